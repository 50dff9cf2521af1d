// SPDX-License-Identifier: MPL-2.0

package bundleinfo

import (
	_ "embed"
	"path/filepath"
	"slices"

	"github.com/fibyos/bundlekit/pkg/entitlement"
)

const (
	// ContentDir is the directory inside a bundle root that holds its payload.
	ContentDir = "Content"
	// InfoFileName is the descriptor file name inside ContentDir.
	InfoFileName = "Info.json"
	// ConfigFileName is the marker file name inside ContentDir that a valid
	// bundle structure requires.
	ConfigFileName = "Config.json"
)

//go:embed info_schema.cue
var infoSchema string

type (
	// Info is the decoded Info.json descriptor of a bundle.
	Info struct {
		Name                 string             `json:"name" toml:"name"`
		Identifier           string             `json:"identifier" toml:"identifier"`
		EntryPoint           string             `json:"entry_point" toml:"entry_point"`
		Metadata             map[string]string  `json:"metadata" toml:"metadata"`
		Icons                Icons              `json:"icons" toml:"icons"`
		Platforms            []string           `json:"platforms" toml:"platforms"`
		MinimumSystemVersion string             `json:"minimum_system_version" toml:"minimum_system_version"`
		DeviceFamily         []string           `json:"device_family" toml:"device_family"`
		Entitlements         []entitlement.Type `json:"entitlements" toml:"entitlements"`
		URLSchemes           []URLScheme        `json:"url_schemes" toml:"url_schemes"`
		AppServices          AppServices        `json:"app_services" toml:"app_services"`
		Security             Security           `json:"security" toml:"security"`
		Fibyos               Fibyos             `json:"fibyos" toml:"fibyos"`
	}

	// Icons lists the icon assets of a bundle, relative to the bundle root.
	Icons struct {
		Icon16       string `json:"icon_16" toml:"icon_16"`
		Icon32       string `json:"icon_32" toml:"icon_32"`
		Icon128      string `json:"icon_128" toml:"icon_128"`
		LaunchScreen string `json:"launch_screen" toml:"launch_screen"`
	}

	// URLScheme is a URL scheme the bundle handles.
	URLScheme struct {
		Scheme      string `json:"scheme" toml:"scheme"`
		Description string `json:"description" toml:"description"`
	}

	// AppServices declares background services the bundle uses.
	AppServices struct {
		BackgroundModes []string `json:"background_modes" toml:"background_modes"`
	}

	// Security groups sandbox, transport and signing settings.
	Security struct {
		AppSandbox           bool                 `json:"app_sandbox" toml:"app_sandbox"`
		AppTransportSecurity AppTransportSecurity `json:"app_transport_security" toml:"app_transport_security"`
		CodeSignature        CodeSignature        `json:"code_signature" toml:"code_signature"`
	}

	// AppTransportSecurity controls plain-HTTP access, globally and per domain.
	AppTransportSecurity struct {
		AllowsInsecureHTTP bool                       `json:"allows_insecure_http" toml:"allows_insecure_http"`
		ExceptionDomains   map[string]ExceptionDomain `json:"exception_domains" toml:"exception_domains"`
	}

	// ExceptionDomain overrides transport security for one domain.
	ExceptionDomain struct {
		IncludesSubdomains bool `json:"includes_subdomains" toml:"includes_subdomains"`
		AllowsInsecureHTTP bool `json:"allows_insecure_http" toml:"allows_insecure_http"`
	}

	// CodeSignature identifies the signing team and entitlements file.
	CodeSignature struct {
		TeamID           string `json:"team_id" toml:"team_id"`
		EntitlementsFile string `json:"entitlements_file" toml:"entitlements_file"`
	}

	// Fibyos holds platform specific settings.
	Fibyos struct {
		DocumentTypes []DocumentType `json:"document_types" toml:"document_types"`
	}

	// DocumentType is a document kind the bundle can open.
	DocumentType struct {
		Name       string   `json:"name" toml:"name"`
		Extensions []string `json:"extensions" toml:"extensions"`
		IconFile   string   `json:"icon_file" toml:"icon_file"`
	}
)

// InfoPath returns the descriptor path for the bundle rooted at root.
func InfoPath(root string) string {
	return filepath.Join(root, ContentDir, InfoFileName)
}

// ConfigPath returns the structure marker path for the bundle rooted at root.
func ConfigPath(root string) string {
	return filepath.Join(root, ContentDir, ConfigFileName)
}

// EntryPointPath resolves the declared entry point against the bundle root.
// Entry points use forward slashes; absolute entry points are returned as-is.
func (i *Info) EntryPointPath(root string) string {
	native := filepath.FromSlash(i.EntryPoint)
	if filepath.IsAbs(native) {
		return native
	}
	return filepath.Join(root, native)
}

// HasEntitlement reports whether the descriptor requests t.
func (i *Info) HasEntitlement(t entitlement.Type) bool {
	return slices.Contains(i.Entitlements, t)
}
