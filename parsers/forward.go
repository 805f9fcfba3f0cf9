package parsers

import "strings"

// Forwarding markers inserted by mail clients, scanned in priority order.
// The first marker found wins.
var forwardingMarkers = []string{
	"---------- Forwarded message ---------", // Gmail
	"Begin forwarded message:",               // Mac Mail
	"-----Original Message-----",             // Outlook
	"From:",                                  // bare header line as last resort
}

// findForwardingMarker returns the first matching marker and its byte
// offset, or ("", -1) when the document carries none.
func findForwardingMarker(content string) (string, int) {
	for _, marker := range forwardingMarkers {
		if pos := strings.Index(content, marker); pos != -1 {
			return marker, pos
		}
	}
	return "", -1
}

// forwardedContent returns the vendor payload: everything after the
// forwarding marker. Without a marker the entire document is treated as
// forwarded so field extraction still gets a chance to run.
func forwardedContent(content string) string {
	marker, pos := findForwardingMarker(content)
	if pos == -1 {
		return content
	}
	return content[pos+len(marker):]
}

// preForwardedContent returns the sender's own addition: everything before
// the forwarding marker. Without a marker there is no pre-forward region.
func preForwardedContent(content string) string {
	_, pos := findForwardingMarker(content)
	if pos == -1 {
		return ""
	}
	return strings.TrimSpace(content[:pos])
}
