package fetch

import "github.com/lutrisart/lutrisart/internal/sgdb"

// Policy holds the content filters applied to candidate assets.
type Policy struct {
	FilterNSFW  bool
	FilterHumor bool
}

// Select picks exactly one asset from a candidate list: the first entry that
// survives the content policy. The service's listing order encodes its
// relevance ranking, so no local re-sort happens. The second return is false
// when every candidate was filtered out or the list was empty.
func Select(candidates []sgdb.ImageAsset, policy Policy) (sgdb.ImageAsset, bool) {
	for _, c := range candidates {
		if policy.FilterNSFW && c.NSFW {
			continue
		}
		if policy.FilterHumor && c.Humor {
			continue
		}
		return c, true
	}
	return sgdb.ImageAsset{}, false
}
