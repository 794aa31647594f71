package attr

import (
	"errors"
	"math"
	"net/netip"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Neumenon/attrs/geom"
)

// ============================================================
// Canonical Text Encoding
// ============================================================

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// formatInteger returns the base-10 form.
func formatInteger(n int64) string {
	return strconv.FormatInt(n, 10)
}

// formatReal returns the shortest round-trip decimal.
// Integral values keep a ".0" suffix so they read back as REAL.
func formatReal(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// formatBool returns "true" or "false".
func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

// formatDate returns the calendar date in local time.
func formatDate(t time.Time) string {
	return t.In(time.Local).Format(dateLayout)
}

// formatTimestamp returns the date and time of day, local time, whole seconds.
func formatTimestamp(ts Timestamp) string {
	return ts.Time().Format(timestampLayout)
}

// formatPoint2D returns "x;y".
func formatPoint2D(p geom.Point2D) string {
	return formatReal(p.X) + ";" + formatReal(p.Y)
}

// formatPoint3D returns "x;y;z".
func formatPoint3D(p geom.Point3D) string {
	return formatReal(p.X) + ";" + formatReal(p.Y) + ";" + formatReal(p.Z)
}

// formatPolyline2D joins every component with ";".
func formatPolyline2D(pts []geom.Point2D) string {
	var sb strings.Builder
	for i, p := range pts {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(formatPoint2D(p))
	}
	return sb.String()
}

// formatPolyline3D joins every component with ";".
func formatPolyline3D(pts []geom.Point3D) string {
	var sb strings.Builder
	for i, p := range pts {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(formatPoint3D(p))
	}
	return sb.String()
}

// ============================================================
// Numbers
// ============================================================

var errSyntax = errors.New("attr: malformed text")

// parseInteger reads a base-10 integer literal with optional sign.
func parseInteger(text string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(text), 10, 64)
}

// parseReal reads a decimal literal. Hex floats, underscores and the
// lower-case "inf"/"nan" words are refused; "NaN" and "Infinity" are accepted.
func parseReal(text string) (float64, error) {
	s := strings.TrimSpace(text)
	switch s {
	case "NaN":
		return math.NaN(), nil
	case "Infinity", "+Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	case "":
		return 0, errSyntax
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && c != '.' && c != '-' && c != '+' && c != 'e' && c != 'E' {
			return 0, errSyntax
		}
	}
	return strconv.ParseFloat(s, 64)
}

// ============================================================
// Booleans
// ============================================================

var (
	// TrueConstants are the texts read as true, compared case-insensitively.
	TrueConstants = []string{"true", "yes", "oui", "t", "y", "o"}
	// FalseConstants are the texts read as false, compared case-insensitively.
	FalseConstants = []string{"false", "no", "non", "f", "n"}
)

// parseBool reads one of the boolean constants.
func parseBool(text string) (bool, error) {
	s := strings.TrimSpace(text)
	for _, c := range TrueConstants {
		if strings.EqualFold(s, c) {
			return true, nil
		}
	}
	for _, c := range FalseConstants {
		if strings.EqualFold(s, c) {
			return false, nil
		}
	}
	return false, errSyntax
}

// ============================================================
// Dates
// ============================================================

// dateLayouts are tried in order when reading a DATE from text. Layouts
// without a zone are read in local time.
var dateLayouts = []string{
	timestampLayout,
	dateLayout,
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC850,
	time.ANSIC,
	time.UnixDate,
	"1/2/2006 15:04:05",
	"1/2/2006",
	"1/2/06",
	"Jan 2, 2006 3:04:05 PM",
	"Jan 2, 2006",
	"January 2, 2006",
	"Monday, January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// parseDate tries every layout of dateLayouts.
func parseDate(text string) (time.Time, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, errSyntax
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errSyntax
}

// ============================================================
// Coordinates
// ============================================================

// splitComponents splits "a;b;c" into floats. An empty text has no
// components.
func splitComponents(text string) ([]float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ";")
	out := make([]float64, len(parts))
	for i, p := range parts {
		f, err := parseReal(p)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// component returns c[i], or 0 past the end.
func component(c []float64, i int) float64 {
	if i < len(c) {
		return c[i]
	}
	return 0
}

// parsePoint2D reads "x;y". In strict mode exactly two components are
// required; otherwise missing components are 0 and extra ones are ignored.
func parsePoint2D(text string, strict bool) (geom.Point2D, error) {
	c, err := splitComponents(text)
	if err != nil {
		return geom.Point2D{}, err
	}
	if len(c) == 0 || (strict && len(c) != 2) {
		return geom.Point2D{}, errSyntax
	}
	return geom.Pt2(component(c, 0), component(c, 1)), nil
}

// parsePoint3D reads "x;y;z" with the same strictness rules as parsePoint2D.
func parsePoint3D(text string, strict bool) (geom.Point3D, error) {
	c, err := splitComponents(text)
	if err != nil {
		return geom.Point3D{}, err
	}
	if len(c) == 0 || (strict && len(c) != 3) {
		return geom.Point3D{}, errSyntax
	}
	return geom.Pt3(component(c, 0), component(c, 1), component(c, 2)), nil
}

// parsePolyline2D reads "x1;y1;x2;y2...". Strict mode requires a non-empty
// list whose length is a multiple of two; lenient mode pads a trailing
// partial point with zeros.
func parsePolyline2D(text string, strict bool) ([]geom.Point2D, error) {
	c, err := splitComponents(text)
	if err != nil {
		return nil, err
	}
	if strict && (len(c) == 0 || len(c)%2 != 0) {
		return nil, errSyntax
	}
	pts := make([]geom.Point2D, 0, (len(c)+1)/2)
	for i := 0; i < len(c); i += 2 {
		pts = append(pts, geom.Pt2(c[i], component(c, i+1)))
	}
	return pts, nil
}

// parsePolyline3D reads "x1;y1;z1;...", like parsePolyline2D with triples.
func parsePolyline3D(text string, strict bool) ([]geom.Point3D, error) {
	c, err := splitComponents(text)
	if err != nil {
		return nil, err
	}
	if strict && (len(c) == 0 || len(c)%3 != 0) {
		return nil, errSyntax
	}
	pts := make([]geom.Point3D, 0, (len(c)+2)/3)
	for i := 0; i < len(c); i += 3 {
		pts = append(pts, geom.Pt3(c[i], component(c, i+1), component(c, i+2)))
	}
	return pts, nil
}

// ============================================================
// Identifiers and locators
// ============================================================

const uuidScheme = "uuid"

// parseStrictUUID accepts "uuid:<id>", "urn:uuid:<id>" or the plain
// 8-4-4-4-12 form.
func parseStrictUUID(text string) (uuid.UUID, error) {
	s := strings.TrimSpace(text)
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "urn:uuid:"):
		s = s[len("urn:uuid:"):]
	case strings.HasPrefix(lower, uuidScheme+"://"):
		s = s[len(uuidScheme)+3:]
	case strings.HasPrefix(lower, uuidScheme+":"):
		s = s[len(uuidScheme)+1:]
	}
	if len(s) != 36 {
		return uuid.Nil, errSyntax
	}
	return uuid.Parse(s)
}

// nameUUID derives a stable name-based UUID from arbitrary text.
func nameUUID(text string) uuid.UUID {
	return uuid.NewMD5(uuid.Nil, []byte(text))
}

// parseStrictURI requires a scheme and no inner whitespace.
func parseStrictURI(text string) (URI, error) {
	s := strings.TrimSpace(text)
	if strings.ContainsAny(s, " \t\r\n") {
		return URI{}, errSyntax
	}
	u, err := ParseURI(s)
	if err != nil {
		return URI{}, err
	}
	if u.Scheme() == "" {
		return URI{}, errSyntax
	}
	return u, nil
}

// urlSchemes are the protocols a URL may use.
var urlSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"ftp":    true,
	"file":   true,
	"jar":    true,
	"mailto": true,
}

// parseURL requires one of urlSchemes and no inner whitespace.
func parseURL(text string) (*url.URL, error) {
	s := strings.TrimSpace(text)
	if strings.ContainsAny(s, " \t\r\n") {
		return nil, errSyntax
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	if !urlSchemes[strings.ToLower(u.Scheme)] {
		return nil, errSyntax
	}
	return u, nil
}

// defaultScheme is used when an address is turned into a locator.
const defaultScheme = "file"

// addrURL builds "file://<ip>" for an address.
func addrURL(a netip.Addr) *url.URL {
	host := a.String()
	if a.Is6() && !a.Is4In6() {
		host = "[" + host + "]"
	}
	return &url.URL{Scheme: defaultScheme, Host: host}
}

var loopback = netip.AddrFrom4([4]byte{127, 0, 0, 1})

// parseInet reads an IP literal, "localhost" or the "host/ip" form.
// Host names are never looked up.
func parseInet(text string) (netip.Addr, error) {
	s := strings.TrimSpace(text)
	if strings.EqualFold(s, "localhost") {
		return loopback, nil
	}
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	return netip.ParseAddr(s)
}

// hostAddr reads the host of a locator as an address.
func hostAddr(host string) (netip.Addr, error) {
	if host == "" {
		return netip.Addr{}, errSyntax
	}
	return parseInet(host)
}

// splitQualified splits "a.b.Type.CONST" into "a.b.Type" and "CONST".
func splitQualified(text string) (string, string, bool) {
	s := strings.TrimSpace(text)
	i := strings.LastIndexByte(s, '.')
	if i <= 0 || i == len(s)-1 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}
