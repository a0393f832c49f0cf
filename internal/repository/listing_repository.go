package repository

import (
	"context"
	"sort"

	"rental_coach_backend/internal/model"
	"rental_coach_backend/internal/util"
)

type ListingRepository interface {
	List(ctx context.Context) ([]model.Listing, error)
	Get(ctx context.Context, id int) (*model.Listing, error)
}

// DefaultListings 内置的三套模拟房源
func DefaultListings() []model.Listing {
	return []model.Listing{
		{
			ID:              1,
			Price:           1200,
			Bedrooms:        2,
			PetsAllowed:     "no",
			Title:           "Cozy 2-Bedroom Apartment in Downtown",
			Description:     "Charming 2-bedroom apartment in the heart of downtown. Close to public transport, restaurants, and shops.",
			LandlordPersona: "Friendly and responsive",
			ListerName:      "John Smith",
		},
		{
			ID:              2,
			Price:           1500,
			Bedrooms:        3,
			PetsAllowed:     "yes",
			Title:           "Spacious 3-Bedroom House with Yard",
			Description:     "Large 3-bedroom house with a fenced backyard. Ideal for families or groups. Pet-friendly.",
			LandlordPersona: "Professional and detailed",
			ListerName:      "Sarah Johnson",
		},
		{
			// 价格明显偏低
			ID:              3,
			Price:           800,
			Bedrooms:        1,
			PetsAllowed:     "no",
			Title:           "Budget-Friendly 1-Bedroom Near University",
			Description:     "One-bedroom apartment steps away from the university campus. Affordable rent for students.",
			LandlordPersona: "Evasive and vague",
			ListerName:      "Anonymous Lister",
		},
	}
}

type MemoryListingRepository struct {
	listings map[int]model.Listing
}

func NewMemoryListingRepository(listings []model.Listing) *MemoryListingRepository {
	m := make(map[int]model.Listing, len(listings))
	for _, l := range listings {
		m[l.ID] = l
	}
	return &MemoryListingRepository{listings: m}
}

func (r *MemoryListingRepository) List(ctx context.Context) ([]model.Listing, error) {
	out := make([]model.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryListingRepository) Get(ctx context.Context, id int) (*model.Listing, error) {
	l, ok := r.listings[id]
	if !ok {
		return nil, util.ErrListingNotFound
	}
	return &l, nil
}
