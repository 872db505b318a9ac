package application_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/pdpanel/internal/application"
	"github.com/ericfisherdev/pdpanel/internal/domain/model"
)

func TestSettingsActions_AppendsPagerDuty(t *testing.T) {
	nav := application.NewNavigationService(nil)

	for _, kind := range []model.SettingsPageKind{model.PageDataRoot, model.PageUserSettingsManager, model.PageZenossInfo} {
		actions := nav.SettingsActions(kind)
		last := actions[len(actions)-1]
		assert.Equal(t, model.NavAction{
			ID:         "pd-import-services-page",
			Name:       "PagerDuty",
			Action:     "pd-import-services-page",
			Permission: model.PermManageDMD,
		}, last, string(kind))
	}
}

func TestSettingsActions_ZenPackManagerIsRelative(t *testing.T) {
	nav := application.NewNavigationService(nil)

	actions := nav.SettingsActions(model.PageZenPackManager)

	assert.Equal(t, "../pd-import-services-page", actions[len(actions)-1].Action)
}

func TestSettingsActions_DoesNotAccumulate(t *testing.T) {
	nav := application.NewNavigationService(nil)

	first := nav.SettingsActions(model.PageDataRoot)
	second := nav.SettingsActions(model.PageDataRoot)

	assert.Equal(t, len(first), len(second))
}

func TestUpdatePrimary_AddsSubviewAfterBase(t *testing.T) {
	baseCalled := false
	nav := application.NewNavigationService(func(item *model.PrimaryNavItem) {
		baseCalled = true
		item.Subviews = append(item.Subviews, model.DataRootManagePath)
	})

	item := &model.PrimaryNavItem{Name: "Advanced"}
	nav.UpdatePrimary(item)

	require.True(t, baseCalled)
	assert.Equal(t, []string{model.DataRootManagePath, "/zport/dmd/pd-import-services-page"}, item.Subviews)

	nav.UpdatePrimary(item)
	assert.Len(t, item.Subviews, 2, "subview must be added once")
}

func TestUpdatePrimary_IgnoresOtherItems(t *testing.T) {
	nav := application.NewNavigationService(nil)

	item := &model.PrimaryNavItem{Name: "Events", Subviews: []string{"/zport/dmd/Events/evconsole"}}
	nav.UpdatePrimary(item)

	assert.Equal(t, []string{"/zport/dmd/Events/evconsole"}, item.Subviews)
}

func TestVisible_FiltersByPermission(t *testing.T) {
	nav := application.NewNavigationService(nil)
	actions := nav.SettingsActions(model.PageDataRoot)

	visible := application.Visible(actions, []string{"View"})
	for _, a := range visible {
		assert.NotEqual(t, model.SettingsPageID, a.ID)
	}

	visible = application.Visible(actions, []string{"View", model.PermManageDMD})
	assert.Len(t, visible, len(actions))
}
