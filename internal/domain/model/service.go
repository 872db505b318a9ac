package model

// ServiceTypeEventsV2 is the service type reported for services reachable
// through an Events API v2 integration.
const ServiceTypeEventsV2 = "generic_events_api_v2"

// Service is a PagerDuty service that can receive events. ServiceKey is the
// integration key of the service's Events API v2 integration.
type Service struct {
	ID          string
	Name        string
	ServiceKey  string
	Type        string
	Summary     string
	HTMLURL     string
	Description string
}

// ServiceDict is the list item returned when services are fetched.
type ServiceDict struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ServiceKey  string `json:"serviceKey"`
	Type        string `json:"type"`
	Summary     string `json:"summary,omitempty"`
	HTMLURL     string `json:"htmlUrl,omitempty"`
	Description string `json:"description,omitempty"`
}

// Dict converts the service to its wire shape.
func (s Service) Dict() ServiceDict {
	return ServiceDict{
		ID:          s.ID,
		Name:        s.Name,
		ServiceKey:  s.ServiceKey,
		Type:        s.Type,
		Summary:     s.Summary,
		HTMLURL:     s.HTMLURL,
		Description: s.Description,
	}
}
