package petlist

import (
	"fmt"
	"strings"

	"github.com/pawshelter/petcare/internal/api"
)

// PetItem wraps an API pet for the bubbles list.
type PetItem struct {
	api.Pet
	Index int
}

func (p PetItem) Title() string {
	if p.Pet.Name != "" {
		return p.Pet.Name
	}
	return "(unnamed " + p.Pet.Type + ")"
}

func (p PetItem) Description() string {
	parts := make([]string, 0, 6)
	if kind := strings.TrimSpace(p.Pet.Type + " " + p.Pet.Breed); kind != "" {
		parts = append(parts, kind)
	}
	if p.Pet.Age != "" {
		parts = append(parts, fmt.Sprintf("%s yrs", p.Pet.Age))
	}
	if p.Pet.Gender != "" {
		parts = append(parts, p.Pet.Gender)
	}
	if p.Pet.Location != "" {
		parts = append(parts, p.Pet.Location)
	}
	if p.Pet.Price != "" {
		parts = append(parts, "Rs. "+string(p.Pet.Price))
	}
	desc := strings.Join(parts, " | ")
	if !p.Pet.Available {
		desc += "  (adopted)"
	}
	return desc
}

func (p PetItem) FilterValue() string {
	return strings.Join([]string{p.Pet.Name, p.Pet.Type, p.Pet.Breed, p.Pet.Location}, " ")
}
