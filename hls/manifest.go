// Package hls derives delivery URLs from Cloudinary asset URLs. Both the
// upload pipeline and the playback client apply the same transforms, so
// they live in one place.
package hls

import "strings"

const (
	uploadSegment    = "/video/upload/"
	streamingProfile = "sp_hls"
	thumbTransform   = "w_640,h_360,c_fill,q_auto"
)

// StreamURL converts a provider asset URL of the form
// .../video/upload/[v<version>/]<publicId>.<ext> into its HLS manifest
// address .../video/upload/sp_hls/<publicId>.m3u8. Already-transformed
// URLs and URLs without the upload segment are returned unchanged.
func StreamURL(assetURL string) string {
	base, rest, ok := splitUpload(assetURL)
	if !ok {
		return assetURL
	}
	if strings.HasPrefix(rest, streamingProfile+"/") {
		return assetURL
	}
	return base + uploadSegment + streamingProfile + "/" + publicID(rest) + ".m3u8"
}

// ThumbnailURL derives a 640x360 center-cropped JPEG poster from the
// asset URL. An empty string means the URL did not look like a provider
// asset; callers treat that as a missing thumbnail, not an error.
func ThumbnailURL(assetURL string) string {
	base, rest, ok := splitUpload(assetURL)
	if !ok {
		return ""
	}
	return base + uploadSegment + thumbTransform + "/" + publicID(rest) + ".jpg"
}

func splitUpload(assetURL string) (base, rest string, ok bool) {
	idx := strings.Index(assetURL, uploadSegment)
	if idx < 0 {
		return "", "", false
	}
	rest = assetURL[idx+len(uploadSegment):]
	if rest == "" {
		return "", "", false
	}
	return assetURL[:idx], rest, true
}

// publicID strips the version prefix and the file extension from the
// path remainder after /video/upload/.
func publicID(rest string) string {
	if strings.HasPrefix(rest, "v") {
		if slash := strings.IndexByte(rest, '/'); slash > 1 && isDigits(rest[1:slash]) {
			rest = rest[slash+1:]
		}
	}
	if dot := strings.LastIndexByte(rest, '.'); dot > strings.LastIndexByte(rest, '/') {
		rest = rest[:dot]
	}
	return rest
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
