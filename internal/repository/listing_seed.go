package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"rental_coach_backend/internal/model"
	"rental_coach_backend/internal/util"

	"github.com/xeipuuv/gojsonschema"
)

const listingSeedSchema = `{
  "type": "object",
  "required": ["listings"],
  "properties": {
    "listings": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "price", "bedrooms", "title", "landlord_persona"],
        "properties": {
          "id": {"type": "integer", "minimum": 1},
          "price": {"type": "integer", "minimum": 0},
          "bedrooms": {"type": "integer", "minimum": 0},
          "pets_allowed": {"type": "string", "enum": ["yes", "no"]},
          "title": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "landlord_persona": {"type": "string", "minLength": 1},
          "lister_name": {"type": "string"},
          "red_flags": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

type listingSeed struct {
	Listings []model.Listing `json:"listings"`
}

// LoadListingSeed 读取房源种子文件并按 schema 校验
func LoadListingSeed(path string) ([]model.Listing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read listing seed: %w", err)
	}
	return ParseListingSeed(data)
}

func ParseListingSeed(data []byte) ([]model.Listing, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(listingSeedSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidSeed, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", util.ErrInvalidSeed, strings.Join(msgs, "; "))
	}

	var seed listingSeed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidSeed, err)
	}

	seen := make(map[int]bool, len(seed.Listings))
	for _, l := range seed.Listings {
		if seen[l.ID] {
			return nil, fmt.Errorf("%w: duplicate listing id %d", util.ErrInvalidSeed, l.ID)
		}
		seen[l.ID] = true
	}
	return seed.Listings, nil
}
