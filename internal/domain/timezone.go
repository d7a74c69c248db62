package domain

import "time"

// ReferenceZone is the fixed civil time zone (UTC+5:30) used for every
// "today" and day-grouping computation, independent of the host's locale.
// IST has no daylight saving, so a fixed offset is equivalent to the IANA
// zone without requiring tzdata on the host.
var ReferenceZone = time.FixedZone("IST", 5*3600+30*60)
