package db

import (
	"fmt"

	"github.com/srs-vsa/analytics-backend/internal/models"
)

// Source identifies exactly one physical interaction table plus its
// capability set. The two tables differ by a single optional column, so
// schema-dependent queries consult the capabilities instead of branching
// on the product.
type Source struct {
	Table string
	// HasPlatform reports whether the table carries the is_mobile_app flag.
	HasPlatform bool
}

// SourceFor routes a product selector to its table. A request never
// touches more than one source.
func SourceFor(product models.Product) (Source, error) {
	switch product {
	case models.ProductPool:
		return Source{Table: "interaction_log", HasPlatform: true}, nil
	case models.ProductLandscape:
		return Source{Table: "landscape_interaction_log", HasPlatform: false}, nil
	default:
		return Source{}, &models.ValidationError{
			Kind:    models.ValidationInvalidEnum,
			Field:   "product",
			Message: fmt.Sprintf("unknown product %q", product),
		}
	}
}
