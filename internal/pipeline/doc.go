// Package pipeline orchestrates the processing of one uploaded video into
// its full artifact set: HLS renditions with a master manifest, periodic
// thumbnails with a storyboard sheet, and a hover-preview clip.
//
// Each job walks pending → encoding → thumbnailing → previewing →
// completed; any stage failure moves the job directly to failed and aborts
// the remaining stages. Thumbnails and preview only run after encoding has
// confirmed the source is decodable. The external repository observes
// nothing until every stage has succeeded: the thumbnail set is recorded
// and the video marked processed in a single notification at the end, so
// readers can never see a half-complete artifact set through the
// repository boundary.
//
// Multiple jobs may run concurrently, bounded by a semaphore; stages within
// one job are strictly sequential so each job owns at most one heavyweight
// encoder process at a time.
package pipeline
