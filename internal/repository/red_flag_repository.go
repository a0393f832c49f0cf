package repository

import (
	"rental_coach_backend/internal/model"
)

// RedFlagRepository 静态的房源警示表，与对话内容无关
type RedFlagRepository struct {
	flags map[int][]string
}

func DefaultRedFlags() map[int][]string {
	return map[int][]string{
		1: {"The price is extremely large!", "They do not allow pets into the bedroom!"},
		2: {"The price is high!", "They do not allow pets into the unit!"},
		3: {"The price is extremely low!", "The landlord is being rude and mean", "Unwilling to negotiate!"},
	}
}

func NewRedFlagRepository(flags map[int][]string) *RedFlagRepository {
	cp := make(map[int][]string, len(flags))
	for id, f := range flags {
		cp[id] = append([]string(nil), f...)
	}
	return &RedFlagRepository{flags: cp}
}

// WithListingOverrides 种子文件中自带 red_flags 的房源覆盖默认表
func (r *RedFlagRepository) WithListingOverrides(listings []model.Listing) *RedFlagRepository {
	for _, l := range listings {
		if len(l.RedFlags) > 0 {
			r.flags[l.ID] = append([]string(nil), l.RedFlags...)
		}
	}
	return r
}

// For 返回副本；未知房源返回空列表
func (r *RedFlagRepository) For(listingID int) []string {
	return append([]string{}, r.flags[listingID]...)
}
