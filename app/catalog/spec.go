package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Title extraction patterns. The vocabulary is fixed: Apple Silicon
// chips M1-M5 with Pro/Max variants, screen sizes in inches, core
// counts, GB/TB capacities and a 4-digit model year.
var (
	chipRe   = regexp.MustCompile(`(?i)\bM([1-5])\b(?:[\s-]*(Pro|Max)\b)?`)
	screenRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:inch\b|["”]|'')`)
	sizeRe   = regexp.MustCompile(`(?i)(\d+)\s*(GB|TB)`)
	yearRe   = regexp.MustCompile(`\b(20\d{2})\b`)

	// Known laptop screen sizes, used when no explicit inch marker is
	// present ("MacBook Pro 14 M4 ..."). The candidate must not be
	// part of a capacity or core-count token.
	bareScreenRe = regexp.MustCompile(`\b(1[3-6](?:\.\d)?)\b`)

	cpuRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)[\s-]*(?:core\s*)?CPU`),
		regexp.MustCompile(`(?i)(\d+)\s*C(?:$|[\s,|/])`),
	}
	gpuRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)[\s-]*(?:core\s*)?GPU`),
		regexp.MustCompile(`(?i)(\d+)\s*G(?:$|[\s,|/])`),
	}
)

// reviewTokenThreshold is the number of GB/TB quantities in one title
// above which the RAM/storage split is ambiguous enough to need a
// human look.
const reviewTokenThreshold = 3

// ParseSpec extracts structured hardware attributes from a free-text
// listing title. It never fails: fields that cannot be resolved stay
// at their zero value, and the identity key is empty when the chip is
// unknown. The result depends only on the input text.
func ParseSpec(title string) Spec {
	spec := Spec{ModelType: ModelTypeBase}

	title = strings.TrimSpace(title)
	if title == "" {
		return spec
	}

	spec.ModelType = extractModelType(title)
	spec.Chip, spec.ChipVariant = extractChip(title)
	spec.ScreenSize = extractScreenSize(title)
	spec.CPUCores = extractCores(title, cpuRes)
	spec.GPUCores = extractCores(title, gpuRes)
	spec.Year = extractYear(title)

	tokens := scanSizeTokens(title)
	spec.RAMGB, spec.StorageGB = splitRAMAndStorage(tokens)
	spec.NeedsReview = len(tokens) >= reviewTokenThreshold

	spec.IdentityKey = buildIdentityKey(spec)
	spec.DisplayName = buildDisplayName(spec)

	return spec
}

func extractModelType(title string) ModelType {
	lower := strings.ToLower(title)
	if strings.Contains(lower, "air") {
		return ModelTypeAir
	}
	if strings.Contains(lower, "pro") {
		return ModelTypePro
	}
	return ModelTypeBase
}

// extractChip returns the first chip token in the title. Later
// occurrences are ignored so that accessory mentions ("compatible
// with M1/M2") cannot override the leading spec.
func extractChip(title string) (chip, variant string) {
	m := chipRe.FindStringSubmatch(title)
	if m == nil {
		return "", ""
	}

	chip = "M" + m[1]
	if m[2] != "" {
		variant = strings.ToUpper(m[2][:1]) + strings.ToLower(m[2][1:])
	}
	return chip, variant
}

func extractScreenSize(title string) string {
	if m := screenRe.FindStringSubmatch(title); m != nil {
		return m[1]
	}

	// No inch marker. Fall back to a standalone 13-16 number that is
	// not the leading digits of a capacity or core-count token.
	for _, idx := range bareScreenRe.FindAllStringSubmatchIndex(title, -1) {
		rest := strings.TrimLeft(title[idx[1]:], " ")
		restLower := strings.ToLower(rest)
		if hasAnyPrefix(restLower, "gb", "tb", "cpu", "gpu", "core") {
			continue
		}
		return title[idx[2]:idx[3]]
	}

	return ""
}

func extractCores(title string, patterns []*regexp.Regexp) int {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(title); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n
			}
		}
	}
	return 0
}

func extractYear(title string) int {
	if m := yearRe.FindStringSubmatch(title); m != nil {
		year, _ := strconv.Atoi(m[1])
		return year
	}
	return 0
}

// sizeToken is one GB/TB quantity in a title, with the surrounding
// context that identifies it as RAM or storage.
type sizeToken struct {
	value int
	unit  string // "GB" or "TB"
	ram   bool   // explicitly tagged RAM ("16GB RAM", "RAM 16GB")
	ssd   bool   // explicitly tagged storage ("512GB SSD", "SSD 512GB")
}

func scanSizeTokens(title string) []sizeToken {
	matches := sizeRe.FindAllStringSubmatchIndex(title, -1)
	tokens := make([]sizeToken, 0, len(matches))

	for _, m := range matches {
		value, err := strconv.Atoi(title[m[2]:m[3]])
		if err != nil {
			continue
		}

		before := strings.ToLower(strings.TrimRight(title[:m[0]], " :-"))
		after := strings.ToLower(strings.TrimLeft(title[m[1]:], " :-"))

		tokens = append(tokens, sizeToken{
			value: value,
			unit:  strings.ToUpper(title[m[4]:m[5]]),
			ram:   strings.HasPrefix(after, "ram") || strings.HasSuffix(before, "ram"),
			ssd:   strings.HasPrefix(after, "ssd") || strings.HasSuffix(before, "ssd"),
		})
	}

	return tokens
}

// splitRAMAndStorage assigns the scanned GB/TB quantities to RAM and
// storage. RAM prefers an explicitly tagged token, then the first GB
// quantity that is not storage-tagged. Storage prefers a TB quantity
// (converted to GB) or an SSD-tagged GB quantity; otherwise the last
// unassigned token is taken, relying on the retailer convention of
// listing RAM before storage.
func splitRAMAndStorage(tokens []sizeToken) (ramGB, storageGB int) {
	ramIdx := -1
	for i, tok := range tokens {
		if tok.unit == "GB" && tok.ram {
			ramIdx = i
			break
		}
	}
	if ramIdx == -1 {
		for i, tok := range tokens {
			if tok.unit == "GB" && !tok.ssd {
				ramIdx = i
				break
			}
		}
	}
	if ramIdx >= 0 {
		ramGB = tokens[ramIdx].value
	}

	for _, tok := range tokens {
		if tok.unit == "TB" {
			return ramGB, tok.value * 1024
		}
	}
	for _, tok := range tokens {
		if tok.unit == "GB" && tok.ssd {
			return ramGB, tok.value
		}
	}

	// Fallback: last remaining quantity in reading order. A single
	// quantity already consumed as RAM leaves storage unknown.
	for i := len(tokens) - 1; i >= 0; i-- {
		if i == ramIdx || tokens[i].ram {
			continue
		}
		storageGB = tokens[i].value
		if tokens[i].unit == "TB" {
			storageGB *= 1024
		}
		return ramGB, storageGB
	}

	return ramGB, 0
}

// buildIdentityKey derives the stable cross-shop identity from the
// normalized attributes. An unknown chip makes the listing
// unmatchable, so the key is empty.
func buildIdentityKey(spec Spec) string {
	if spec.Chip == "" {
		return ""
	}

	chipPart := strings.ToLower(spec.Chip)
	if spec.ChipVariant != "" {
		chipPart += "-" + strings.ToLower(spec.ChipVariant)
	}
	parts := []string{chipPart}

	switch spec.ModelType {
	case ModelTypeAir:
		parts = append(parts, "air")
	case ModelTypePro:
		parts = append(parts, "pro")
	}

	if spec.ScreenSize != "" {
		parts = append(parts, spec.ScreenSize)
	}
	if spec.RAMGB > 0 {
		parts = append(parts, strconv.Itoa(spec.RAMGB))
	}
	if spec.StorageGB > 0 {
		parts = append(parts, storageKeyPart(spec.StorageGB))
	}

	return strings.Join(parts, "-")
}

func storageKeyPart(gb int) string {
	if gb >= 1024 {
		return fmt.Sprintf("%dtb", gb/1024)
	}
	return fmt.Sprintf("%dgb", gb)
}

// StorageDisplay renders a GB capacity the way retailers print it
// ("512GB", "1TB").
func StorageDisplay(gb int) string {
	if gb >= 1024 {
		return fmt.Sprintf("%dTB", gb/1024)
	}
	return fmt.Sprintf("%dGB", gb)
}

func buildDisplayName(spec Spec) string {
	recognized := spec.ModelType != ModelTypeBase || spec.Chip != "" ||
		spec.ScreenSize != "" || spec.CPUCores > 0 || spec.GPUCores > 0 ||
		spec.RAMGB > 0 || spec.StorageGB > 0 || spec.Year > 0
	if !recognized {
		return ""
	}

	parts := []string{string(spec.ModelType)}

	if spec.ScreenSize != "" {
		parts = append(parts, spec.ScreenSize+`"`)
	}
	if spec.Chip != "" {
		chip := spec.Chip
		if spec.ChipVariant != "" {
			chip += " " + spec.ChipVariant
		}
		parts = append(parts, chip)
	}
	if spec.CPUCores > 0 {
		parts = append(parts, fmt.Sprintf("%dC", spec.CPUCores))
	}
	if spec.GPUCores > 0 {
		parts = append(parts, fmt.Sprintf("%dG", spec.GPUCores))
	}
	if spec.RAMGB > 0 {
		parts = append(parts, fmt.Sprintf("%dGB", spec.RAMGB))
	}
	if spec.StorageGB > 0 {
		parts = append(parts, StorageDisplay(spec.StorageGB))
	}

	return strings.Join(parts, " ")
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
