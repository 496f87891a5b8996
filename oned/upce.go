package oned

import (
	"fmt"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/utils"
)

const upceCodeWidth = 3 + 7*6 + 6

var (
	upcStartPattern = []int{1, 1, 1}
	upceEndPattern  = []int{1, 1, 1, 1, 1, 1}

	// Odd-parity ("L") digit widths; even parity ("G") is the reverse.
	upcLPatterns = [10][]int{
		{3, 2, 1, 1},
		{2, 2, 2, 1},
		{2, 1, 2, 2},
		{1, 4, 1, 1},
		{1, 1, 3, 2},
		{1, 2, 3, 1},
		{1, 1, 1, 4},
		{1, 3, 1, 2},
		{1, 2, 1, 3},
		{3, 1, 1, 2},
	}

	// Parity of the six data digits per number system and check digit.
	// A set bit selects the G pattern, MSB first.
	upceParities = [2][10]int{
		{0x38, 0x34, 0x32, 0x31, 0x2C, 0x26, 0x23, 0x2A, 0x29, 0x25},
		{0x07, 0x0B, 0x0D, 0x0E, 0x13, 0x19, 0x1C, 0x15, 0x16, 0x1A},
	}
)

// encodeUPCE encodes 7 digits (check digit computed) or 8 digits (check
// digit verified) as UPC-E.
func encodeUPCE(contents string) (barcode.Barcode, error) {
	if err := checkDigits(contents, 7, 8); err != nil {
		return nil, err
	}
	check := upcChecksum(upceToUPCA(contents[:7]))
	if len(contents) == 8 {
		if int(contents[7]-'0') != check {
			return nil, fmt.Errorf("contents do not pass checksum")
		}
	} else {
		contents += string(rune('0' + check))
	}

	numSys := int(contents[0] - '0')
	if numSys != 0 && numSys != 1 {
		return nil, fmt.Errorf("number system must be 0 or 1, got %d", numSys)
	}
	parities := upceParities[numSys][check]

	code := make([]bool, upceCodeWidth)
	pos := appendPattern(code, 0, upcStartPattern, true)
	for i := 1; i <= 6; i++ {
		widths := upcLPatterns[contents[i]-'0']
		if (parities>>(6-i))&1 == 1 {
			widths = reversed(widths)
		}
		pos += appendPattern(code, pos, widths, false)
	}
	appendPattern(code, pos, upceEndPattern, false)

	bars := utils.NewBitList(len(code))
	for i, dark := range code {
		bars.SetBit(i, dark)
	}
	return utils.New1DCodeIntCheckSum("UPC E", contents, bars, check), nil
}

// appendPattern writes alternating runs of the given widths starting with
// startColor and returns the number of modules written.
func appendPattern(target []bool, pos int, pattern []int, startColor bool) int {
	color := startColor
	n := 0
	for _, w := range pattern {
		for j := 0; j < w; j++ {
			target[pos+n] = color
			n++
		}
		color = !color
	}
	return n
}

func reversed(p []int) []int {
	out := make([]int, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

// upceToUPCA expands the first seven UPC-E digits to the eleven UPC-A
// digits that precede the check digit.
func upceToUPCA(upce string) string {
	d := upce[1:7]
	var sb strings.Builder
	sb.WriteByte(upce[0])
	switch last := d[5]; last {
	case '0', '1', '2':
		sb.WriteString(d[0:2])
		sb.WriteByte(last)
		sb.WriteString("0000")
		sb.WriteString(d[2:5])
	case '3':
		sb.WriteString(d[0:3])
		sb.WriteString("00000")
		sb.WriteString(d[3:5])
	case '4':
		sb.WriteString(d[0:4])
		sb.WriteString("00000")
		sb.WriteByte(d[4])
	default:
		sb.WriteString(d[0:5])
		sb.WriteString("0000")
		sb.WriteByte(last)
	}
	return sb.String()
}

// upcChecksum computes the UPC/EAN check digit of a digit string.
func upcChecksum(s string) int {
	sum := 0
	for i := len(s) - 1; i >= 0; i -= 2 {
		sum += int(s[i] - '0')
	}
	sum *= 3
	for i := len(s) - 2; i >= 0; i -= 2 {
		sum += int(s[i] - '0')
	}
	return (1000 - sum) % 10
}
