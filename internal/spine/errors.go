package spine

import "regexp"

// reMisfit matches the message Spine prints when the packed atlas needs
// more than one page at the requested scale.
var reMisfit = regexp.MustCompile(`(?i)image does not fit within (the )?max(imum)? page`)

// MatchMisfit reports whether output contains the page-overflow signature.
func MatchMisfit(output string) bool {
	return reMisfit.MatchString(output)
}
