// Package sprite composes periodic thumbnails into a single storyboard
// sheet so players can render seek-bar hover previews from one image
// request instead of one per still.
package sprite
