package application

import (
	"slices"

	"github.com/ericfisherdev/pdpanel/internal/domain/model"
)

// baseSettingsActions is the left navigation every back-compat settings page
// shows before the PagerDuty action is added.
var baseSettingsActions = []model.NavAction{
	{ID: "settings", Name: "Settings", Action: "editSettings", Permission: model.PermManageDMD},
	{ID: "users", Name: "Users", Action: "../ZenUsers/manageUserFolder", Permission: model.PermManageDMD},
	{ID: "zenpacks", Name: "ZenPacks", Action: "../ZenPackManager/viewZenPacks", Permission: model.PermManageDMD},
	{ID: "versions", Name: "Versions", Action: "../About/zenossVersions", Permission: "View"},
}

// PrimaryUpdate is the platform's own subview computation for a primary
// navigation item.
type PrimaryUpdate func(item *model.PrimaryNavItem)

// NavigationService injects the PagerDuty settings page into the platform's
// settings and primary navigation.
type NavigationService struct {
	basePrimary PrimaryUpdate
}

// NewNavigationService creates a NavigationService. basePrimary may be nil.
func NewNavigationService(basePrimary PrimaryUpdate) *NavigationService {
	return &NavigationService{basePrimary: basePrimary}
}

// SettingsActions returns the left navigation for the given settings page,
// ending with the PagerDuty action. ZenPackManager pages live one level
// deeper, so their action is relative to the parent.
func (s *NavigationService) SettingsActions(kind model.SettingsPageKind) []model.NavAction {
	action := model.SettingsPageID
	if kind == model.PageZenPackManager {
		action = "../" + action
	}

	actions := slices.Clone(baseSettingsActions)
	return append(actions, model.NavAction{
		ID:         model.SettingsPageID,
		Name:       model.SettingsPageName,
		Action:     action,
		Permission: model.PermManageDMD,
	})
}

// UpdatePrimary runs the platform's update and then adds the settings page to
// the item's subviews when the item owns the data root management page, so
// the secondary navigation stays visible on the PagerDuty page.
func (s *NavigationService) UpdatePrimary(item *model.PrimaryNavItem) {
	if s.basePrimary != nil {
		s.basePrimary(item)
	}

	if slices.Contains(item.Subviews, model.DataRootManagePath) && !slices.Contains(item.Subviews, model.SettingsPagePath) {
		item.Subviews = append(item.Subviews, model.SettingsPagePath)
	}
}

// Visible filters actions down to those whose permission is held.
func Visible(actions []model.NavAction, permissions []string) []model.NavAction {
	visible := make([]model.NavAction, 0, len(actions))
	for _, a := range actions {
		if a.Permission == "" || slices.Contains(permissions, a.Permission) {
			visible = append(visible, a)
		}
	}
	return visible
}

// AdvancedPrimaryItem is the "Advanced" primary navigation entry with the
// platform's default subviews.
func AdvancedPrimaryItem() model.PrimaryNavItem {
	return model.PrimaryNavItem{
		Name: "Advanced",
		URL:  "/zport/dmd/editSettings",
		Subviews: []string{
			"/zport/dmd/editSettings",
			model.DataRootManagePath,
			"/zport/dmd/ZenUsers/manageUserFolder",
			"/zport/dmd/ZenPackManager/viewZenPacks",
		},
	}
}
