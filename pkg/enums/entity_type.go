package enums

import "fmt"

// EntityType maps to the entity_type enum in Postgres. It tags a pending
// change with the collection it targets; the publisher registry is keyed
// by this closed set.
type EntityType string

const (
	EntityCompany         EntityType = "company"
	EntityEvent           EntityType = "event"
	EntityTestimonial     EntityType = "testimonial"
	EntityPartner         EntityType = "partner"
	EntityJobOpportunity  EntityType = "job_opportunity"
	EntityMediaItem       EntityType = "media_item"
	EntityGlobalMetric    EntityType = "global_metric"
	EntityCorporateLeader EntityType = "corporate_leader"
	EntityPageContent     EntityType = "page_content"
)

var validEntityTypes = []EntityType{
	EntityCompany,
	EntityEvent,
	EntityTestimonial,
	EntityPartner,
	EntityJobOpportunity,
	EntityMediaItem,
	EntityGlobalMetric,
	EntityCorporateLeader,
	EntityPageContent,
}

// IsValid reports whether the value matches the canonical entity_type enum.
func (e EntityType) IsValid() bool {
	for _, candidate := range validEntityTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEntityType converts raw input into EntityType.
func ParseEntityType(value string) (EntityType, error) {
	for _, candidate := range validEntityTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid entity type %q", value)
}

// EntityTypes returns the closed set of supported entity types.
func EntityTypes() []EntityType {
	out := make([]EntityType, len(validEntityTypes))
	copy(out, validEntityTypes)
	return out
}
