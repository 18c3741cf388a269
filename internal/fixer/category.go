package fixer

import "reklamefix/internal/pbcore"

// Category selects the rule set for a record.
type Category string

const (
	CategoryUnclassified Category = "unclassified"
	CategoryCinema       Category = "cinema"
	CategoryTv2          Category = "tv2"
)

// Asset type labels recognised by Classify.
const (
	AssetTypeCinema = "Biografreklamefilm"
	AssetTypeTv2    = "Tv2reklamefilm"
)

// Classify maps the record's asset type onto a category.
func Classify(rec *pbcore.Record) (Category, error) {
	assetType, err := rec.AssetType()
	if err != nil {
		return CategoryUnclassified, err
	}
	return CategoryOf(assetType), nil
}

// CategoryOf maps an asset type label onto a category.
func CategoryOf(assetType string) Category {
	switch assetType {
	case AssetTypeCinema:
		return CategoryCinema
	case AssetTypeTv2:
		return CategoryTv2
	default:
		return CategoryUnclassified
	}
}
