// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies a catalog entry.
type Id int

const (
	NotABundleId Id = iota + 1
	BundleRootNotFoundId
	InfoNotFoundId
	InfoParseErrorId
	UnknownEntitlementId
	InfoAlreadyLoadedId
	ValidationFailedId
	ArchitectureMismatchId
	NotELFId
	ConfigLoadFailedId
	PermissionDeniedId
)

type (
	MarkdownMsg string

	HttpLink string

	// Issue is a Markdown explanation of a failure class with links for
	// further reading.
	Issue struct {
		id       Id
		title    string
		mdMsg    MarkdownMsg
		docLinks []HttpLink
		extLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

// Title is the one-line summary used in listings.
func (i *Issue) Title() string {
	return i.title
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue as terminal Markdown using the glamour style at
// stylePath ("dark", "light", "notty" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var sb strings.Builder
	sb.WriteString("# ")
	sb.WriteString(i.title)
	sb.WriteString("\n")
	sb.WriteString(string(i.mdMsg))

	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			fmt.Fprintf(&sb, "- <%s>\n", link)
		}
		for _, link := range i.extLinks {
			fmt.Fprintf(&sb, "- <%s>\n", link)
		}
	}
	return render(sb.String(), stylePath)
}

var (
	render = glamour.Render

	notABundleIssue = &Issue{
		id:    NotABundleId,
		title: "Not a bundle",
		mdMsg: `
The directory does not follow any bundle convention.

A bundle is a directory whose name ends in one of the recognized suffixes and
that contains the required layout:

~~~
Notes.appd/
└── Content/
    ├── Config.json
    └── Info.json
~~~

## Recognized suffixes
- ` + "`.appd`" + ` application
- ` + "`.serviced`" + ` service
- ` + "`.toolsetd`" + ` toolset
- ` + "`.frameworkd`" + ` framework

## Things you can try
- Check the suffix of the directory name (suffixes are case sensitive)
- Make sure ` + "`Content/Config.json`" + ` is a regular file`,
	}

	bundleRootNotFoundIssue = &Issue{
		id:    BundleRootNotFoundId,
		title: "Bundle root not found",
		mdMsg: `
No directory above the executable is a valid bundle.

The search walks up from the directory containing the executable and stops
below the file system root. The outermost valid bundle wins.

## Things you can try
- Run the binary from inside its bundle directory tree
- Check the bundle layout:
~~~
$ bundlekit check /path/to/Notes.appd
~~~`,
	}

	infoNotFoundIssue = &Issue{
		id:    InfoNotFoundId,
		title: "Info.json not found",
		mdMsg: `
The bundle root was found but ` + "`Content/Info.json`" + ` does not exist.

## Things you can try
- Add an Info.json descriptor next to Config.json
- Check the file name, it is case sensitive`,
	}

	infoParseErrorIssue = &Issue{
		id:    InfoParseErrorId,
		title: "Info.json could not be parsed",
		mdMsg: `
The descriptor is not valid JSON or does not match the descriptor schema.

## Common causes
- A required key is missing (every key is required, empty values are fine)
- A key is misspelled or unknown
- A value has the wrong type

## Minimal descriptor
~~~json
{
  "name": "Notes",
  "identifier": "org.fibyos.notes",
  "entry_point": "Content/bin/notes",
  "metadata": {},
  "icons": {"icon_16": "", "icon_32": "", "icon_128": "", "launch_screen": ""},
  "platforms": [],
  "minimum_system_version": "",
  "device_family": [],
  "entitlements": [],
  "url_schemes": [],
  "app_services": {"background_modes": []},
  "security": {
    "app_sandbox": true,
    "app_transport_security": {"allows_insecure_http": false, "exception_domains": {}},
    "code_signature": {"team_id": "", "entitlements_file": ""}
  },
  "fibyos": {"document_types": []}
}
~~~`,
	}

	unknownEntitlementIssue = &Issue{
		id:    UnknownEntitlementId,
		title: "Unknown entitlement",
		mdMsg: `
The descriptor requests an entitlement that is not part of the vocabulary.
Entitlement tags are lowercase without separators, e.g. ` + "`network`" + `, ` + "`pythonio`" + ` or ` + "`gpioaccess`" + `.

## Things you can try
- List the known entitlements:
~~~
$ bundlekit entitlements
~~~`,
	}

	infoAlreadyLoadedIssue = &Issue{
		id:    InfoAlreadyLoadedId,
		title: "Descriptor already loaded",
		mdMsg: `
The bundle descriptor can be loaded once per process. Later reads must use the
already loaded descriptor.`,
	}

	validationFailedIssue = &Issue{
		id:    ValidationFailedId,
		title: "Bundle validation failed",
		mdMsg: `
One or more validation rules rejected the bundle. Each failure names the
descriptor field involved.

## Things you can try
- Fill in empty identity fields (name, identifier, entry_point)
- Make sure the entry point exists inside the bundle`,
	}

	architectureMismatchIssue = &Issue{
		id:    ArchitectureMismatchId,
		title: "Architecture mismatch",
		mdMsg: `
The entry point was built for a different CPU architecture than the host.

## Things you can try
- Inspect the binary:
~~~
$ bundlekit arch Notes.appd/Content/bin/notes
~~~
- Rebuild the entry point for the host architecture`,
	}

	notELFIssue = &Issue{
		id:    NotELFId,
		title: "Not an ELF file",
		mdMsg: `
Architecture detection only understands ELF executables. Scripts, archives and
Mach-O or PE binaries are reported with their detected media type.`,
	}

	configLoadFailedIssue = &Issue{
		id:    ConfigLoadFailedId,
		title: "Configuration could not be loaded",
		mdMsg: `
The bundlekit configuration file exists but could not be loaded.

## Things you can try
- Check the CUE syntax of ` + "`config.cue`" + `
- Show the effective configuration:
~~~
$ bundlekit config show
~~~

## Example
~~~cue
ui: {
	verbose:      false
	color_scheme: "auto"
}
log: level: "warn"
search_paths: ["/opt/apps"]
output: format: "text"
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	permissionDeniedIssue = &Issue{
		id:    PermissionDeniedId,
		title: "Permission denied",
		mdMsg: `
A file inside the bundle could not be read.

## Things you can try
- Check file and directory permissions
- Run bundlekit as the bundle owner`,
	}

	issues = map[Id]*Issue{
		notABundleIssue.Id():           notABundleIssue,
		bundleRootNotFoundIssue.Id():   bundleRootNotFoundIssue,
		infoNotFoundIssue.Id():         infoNotFoundIssue,
		infoParseErrorIssue.Id():       infoParseErrorIssue,
		unknownEntitlementIssue.Id():   unknownEntitlementIssue,
		infoAlreadyLoadedIssue.Id():    infoAlreadyLoadedIssue,
		validationFailedIssue.Id():     validationFailedIssue,
		architectureMismatchIssue.Id(): architectureMismatchIssue,
		notELFIssue.Id():               notELFIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		permissionDeniedIssue.Id():     permissionDeniedIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return values
}

// Get returns the entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
