// Package lightbox is an interactive contact-sheet gallery viewer for
// [Ebitengine].
//
// A contact sheet is a fixed 2D grid of photographs. The viewer pans and
// zooms across the grid, taps a cell to focus it, swipes between adjacent
// cells, and pinches or double-taps to move between the zoomed view and
// the overview. A secondary detail overlay shows the full image with its
// metadata.
//
// # Quick start
//
//	manifest, _ := lightbox.ParseManifest(manifestJSON)
//	viewer := lightbox.New(lightbox.Config{
//		SheetID:  "monterey",
//		Manifest: manifest,
//		Source:   lightbox.FSImageSource{FS: os.DirFS("photos")},
//		Sheet: lightbox.SheetSpec{
//			SheetWidth: 2400, SheetHeight: 2400,
//			ImageWidth: 360, ImageHeight: 360,
//			MarginX: 24, MarginY: 24,
//			FirstImageX: 48, FirstImageY: 48,
//			Rows: 6, Cols: 6,
//		},
//	})
//	if err := viewer.Init(context.Background()); err != nil {
//		log.Fatal(err)
//	}
//	defer viewer.Dispose()
//	if err := lightbox.Run(viewer, lightbox.RunConfig{Title: "Gallery"}); err != nil {
//		log.Fatal(err)
//	}
//
// # Interaction model
//
// The viewport is a three-state machine owned by [ViewportController]:
// Idle (overview), ZoomedIn (one cell focused), and Animating (a camera
// tween in flight). Gestures arriving while Animating are dropped; there
// is never more than one in-flight transition. [GestureInput] turns raw
// pointer samples into the semantic vocabulary the controller consumes,
// with pinch always taking precedence over pan. All camera motion runs
// through an injected [AnimationController] built on [gween] tweens.
//
// Image loading is concurrent with a bounded fan-out, per-image timeout,
// and bounded retry; a cell whose image cannot be fetched renders a flat
// placeholder and stays fully navigable. Only a sheet with zero loadable
// images fails [Viewer.Init].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package lightbox
