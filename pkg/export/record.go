// Package export assembles denormalized per-species records and streams
// them to a CSV file, one row per pokedex id in ascending order.
package export

import (
	"strconv"
)

// Record is one denormalized CSV row. A record is created once per id,
// written immediately, and never mutated afterwards.
type Record struct {
	ID             int
	PokedexNumber  int
	Name           string
	TypePrimary    string
	TypeSecondary  string
	HP             int
	Attack         int
	Defense        int
	SpecialAttack  int
	SpecialDefense int
	Speed          int
	HeightMeters   float64
	WeightKG       float64
	Description    string
	EvolutionFrom  string
	EvolutionTo    string
	ImageURL       string
}

// Header returns the fixed CSV header in record field order.
func Header() []string {
	return []string{
		"id",
		"pokedex_number",
		"name",
		"type_primary",
		"type_secondary",
		"hp",
		"attack",
		"defense",
		"special_attack",
		"special_defense",
		"speed",
		"height",
		"weight",
		"description",
		"evolution_from",
		"evolution_to",
		"image_url",
	}
}

// Row renders the record as CSV cells in header order. Height and
// weight always carry one decimal place since the raw API units divide
// by ten (raw 7 renders as "0.7").
func (r *Record) Row() []string {
	return []string{
		strconv.Itoa(r.ID),
		strconv.Itoa(r.PokedexNumber),
		r.Name,
		r.TypePrimary,
		r.TypeSecondary,
		strconv.Itoa(r.HP),
		strconv.Itoa(r.Attack),
		strconv.Itoa(r.Defense),
		strconv.Itoa(r.SpecialAttack),
		strconv.Itoa(r.SpecialDefense),
		strconv.Itoa(r.Speed),
		strconv.FormatFloat(r.HeightMeters, 'f', 1, 64),
		strconv.FormatFloat(r.WeightKG, 'f', 1, 64),
		r.Description,
		r.EvolutionFrom,
		r.EvolutionTo,
		r.ImageURL,
	}
}
