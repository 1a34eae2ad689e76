// Package completion builds completion requests for an out-of-process
// analysis service and normalizes its replies.
//
// A request is single-use: it is built once by NewRequest, handed to Send,
// and discarded. The reply is decoded by Normalize into an ordered list of
// Items, in exactly the order the service ranked them.
package completion
