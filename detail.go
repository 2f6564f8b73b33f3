package lightbox

import (
	"image"
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ImageDescriptor identifies one photograph to a DetailView.
type ImageDescriptor struct {
	// Name is the opaque identifier from the sheet manifest, usually a
	// filename.
	Name string
	// Title is the human-readable caption. Derived from Name when the
	// manifest supplies none.
	Title string
	// Image is the decoded photograph, nil when the load failed.
	Image image.Image
}

// DetailView is the modal overlay collaborator. Show presents one image
// with its metadata and must invoke onClose exactly once when dismissed;
// Hide dismisses the overlay without user interaction.
type DetailView interface {
	Show(desc ImageDescriptor, onClose func())
	Hide()
}

var titleCaser = cases.Title(language.Und)

// DeriveTitle turns a filename into a display caption: the extension is
// stripped, separators become spaces, and words are title-cased.
//
//	DeriveTitle("monterey_bay-032.jpg") == "Monterey Bay 032"
func DeriveTitle(name string) string {
	base := path.Base(name)
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	return titleCaser.String(base)
}
