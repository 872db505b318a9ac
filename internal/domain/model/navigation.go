package model

// Navigation identifiers used to wire the PagerDuty settings page into the
// platform's menus.
const (
	SettingsPageID     = "pd-import-services-page"
	SettingsPageName   = "PagerDuty"
	SettingsPagePath   = "/zport/dmd/" + SettingsPageID
	DataRootManagePath = "/zport/dmd/dataRootManage"
	PermManageDMD      = "Manage DMD"
)

// SettingsPageKind identifies one of the back-compat settings pages whose
// left navigation lists the settings actions.
type SettingsPageKind string

const (
	PageDataRoot            SettingsPageKind = "DataRoot"
	PageUserSettingsManager SettingsPageKind = "UserSettingsManager"
	PageZenossInfo          SettingsPageKind = "ZenossInfo"
	PageZenPackManager      SettingsPageKind = "ZenPackManager"
)

// Valid reports whether k is one of the known settings page kinds.
func (k SettingsPageKind) Valid() bool {
	switch k {
	case PageDataRoot, PageUserSettingsManager, PageZenossInfo, PageZenPackManager:
		return true
	}
	return false
}

// NavAction is a single left-navigation entry on a settings page.
type NavAction struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Action     string `json:"action"`
	Permission string `json:"permission"`
}

// PrimaryNavItem is a top-level navigation entry. Subviews lists the paths
// for which the item is rendered as selected with its secondary bar.
type PrimaryNavItem struct {
	Name     string   `json:"name"`
	URL      string   `json:"url"`
	Subviews []string `json:"subviews"`
}
