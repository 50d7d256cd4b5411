package cache

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pawshelter/petcare/internal/api"
)

// GetPet retrieves a cached pet. Returns (pet, isFresh, error).
// isFresh indicates whether the pet is within its TTL.
// Returns nil pet on cache miss.
func (d *DB) GetPet(id string, ttl time.Duration) (*api.Pet, bool, error) {
	row := d.db.QueryRow(`SELECT data, fetched_at FROM pets WHERE id = ?`, id)

	var data string
	var fetchedAt int64
	err := row.Scan(&data, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var pet api.Pet
	if err := json.Unmarshal([]byte(data), &pet); err != nil {
		return nil, false, err
	}
	isFresh := time.Since(time.Unix(fetchedAt, 0)) < ttl
	return &pet, isFresh, nil
}

// PutPet stores a pet in the cache.
func (d *DB) PutPet(pet *api.Pet) error {
	data, err := json.Marshal(pet)
	if err != nil {
		return err
	}
	_, err = d.db.Exec(`INSERT OR REPLACE INTO pets (id, data, fetched_at) VALUES (?, ?, ?)`,
		pet.ID, string(data), time.Now().Unix())
	return err
}

// GetPetList retrieves the cached pet IDs of a named list.
// Returns (ids, isFresh, error). ids is nil on cache miss.
func (d *DB) GetPetList(name string, ttl time.Duration) ([]string, bool, error) {
	row := d.db.QueryRow(`SELECT pet_ids, fetched_at FROM pet_lists WHERE list_name = ?`, name)

	var idsJSON string
	var fetchedAt int64
	err := row.Scan(&idsJSON, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var ids []string
	if err := json.Unmarshal([]byte(idsJSON), &ids); err != nil {
		return nil, false, err
	}

	isFresh := time.Since(time.Unix(fetchedAt, 0)) < ttl
	return ids, isFresh, nil
}

// PutPetList stores the pets of a named list: the ID order and each record.
func (d *DB) PutPetList(name string, pets []api.Pet) error {
	ids := make([]string, 0, len(pets))
	for i := range pets {
		if err := d.PutPet(&pets[i]); err != nil {
			return err
		}
		ids = append(ids, pets[i].ID)
	}
	idsJSON, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	_, err = d.db.Exec(`INSERT OR REPLACE INTO pet_lists (list_name, pet_ids, fetched_at) VALUES (?, ?, ?)`,
		name, string(idsJSON), time.Now().Unix())
	return err
}

// LoadPetList returns the cached pets of a named list in order, skipping
// IDs whose record is gone. fresh reports whether the list is within ttl.
func (d *DB) LoadPetList(name string, ttl time.Duration) ([]api.Pet, bool, error) {
	ids, fresh, err := d.GetPetList(name, ttl)
	if err != nil || ids == nil {
		return nil, false, err
	}
	pets := make([]api.Pet, 0, len(ids))
	for _, id := range ids {
		// Records are written with the list, so the list TTL governs them.
		pet, _, err := d.GetPet(id, ttl)
		if err != nil {
			return nil, false, err
		}
		if pet != nil {
			pets = append(pets, *pet)
		}
	}
	return pets, fresh, nil
}

// InvalidatePetList forces the next load of a named list to miss.
func (d *DB) InvalidatePetList(name string) error {
	_, err := d.db.Exec(`DELETE FROM pet_lists WHERE list_name = ?`, name)
	return err
}
