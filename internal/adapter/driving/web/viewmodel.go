package web

import (
	"strconv"

	"github.com/ericfisherdev/pdpanel/internal/application"
	"github.com/ericfisherdev/pdpanel/internal/domain/model"
)

// SettingsViewModel holds presentation-ready data for the PagerDuty settings page.
type SettingsViewModel struct {
	Subdomain    string
	APIAccessKey string
	APITimeout   string
	CSRFToken    string

	// Message is the popup text from the last save; MessageOK picks its style.
	Message       string
	MessageOK     bool
	InlineMessage string

	Services []ServiceRowViewModel

	Primary  model.PrimaryNavItem
	Settings []model.NavAction
}

// ServiceRowViewModel is one row of the services table.
type ServiceRowViewModel struct {
	ID              string
	Name            string
	ServiceKey      string
	HTMLURL         string
	DescriptionHTML string
}

// applyAccount copies the stored account settings into the form fields.
func (vm *SettingsViewModel) applyAccount(resp application.Response) {
	dict, ok := resp.Data.(model.AccountDict)
	if !ok {
		return
	}
	if dict.Subdomain != nil {
		vm.Subdomain = *dict.Subdomain
	}
	if dict.APIAccessKey != nil {
		vm.APIAccessKey = *dict.APIAccessKey
	}
	if dict.APITimeout != nil {
		vm.APITimeout = strconv.Itoa(*dict.APITimeout)
	}
}

// applyServices fills the services table and messages from a services lookup.
func (vm *SettingsViewModel) applyServices(resp application.Response) {
	vm.InlineMessage = resp.InlineMessage

	dicts, ok := resp.Data.([]model.ServiceDict)
	if !ok {
		return
	}

	vm.Services = make([]ServiceRowViewModel, 0, len(dicts))
	for _, d := range dicts {
		vm.Services = append(vm.Services, ServiceRowViewModel{
			ID:              d.ID,
			Name:            d.Name,
			ServiceKey:      d.ServiceKey,
			HTMLURL:         d.HTMLURL,
			DescriptionHTML: RenderMarkdown(d.Description),
		})
	}
}
