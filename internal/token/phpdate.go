package token

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// DefaultTimestampFormat is used when the timestamp token has no argument.
const DefaultTimestampFormat = "Y-m-d_H-i-s"

// FormatTime renders t using a PHP date() style format. A format containing
// '%' is treated as a strftime layout instead.
func FormatTime(format string, t time.Time) string {
	if format == "" {
		format = DefaultTimestampFormat
	}
	if strings.Contains(format, "%") {
		return strftime.Format(format, t)
	}
	return formatPHPDate(format, t)
}

// formatPHPDate implements the format characters of PHP's date(). A
// backslash escapes the next character; unknown characters are copied.
func formatPHPDate(format string, t time.Time) string {
	var b strings.Builder
	runes := []rune(format)

	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c == '\\' {
			if i+1 < len(runes) {
				i++
				b.WriteRune(runes[i])
			}
			continue
		}

		switch c {
		// Day
		case 'd':
			b.WriteString(pad2(t.Day()))
		case 'D':
			b.WriteString(t.Format("Mon"))
		case 'j':
			b.WriteString(strconv.Itoa(t.Day()))
		case 'l':
			b.WriteString(t.Weekday().String())
		case 'N':
			b.WriteString(strconv.Itoa(isoWeekday(t)))
		case 'S':
			b.WriteString(ordinalSuffix(t.Day()))
		case 'w':
			b.WriteString(strconv.Itoa(int(t.Weekday())))
		case 'z':
			b.WriteString(strconv.Itoa(t.YearDay() - 1))

		// Week
		case 'W':
			_, week := t.ISOWeek()
			b.WriteString(pad2(week))

		// Month
		case 'F':
			b.WriteString(t.Month().String())
		case 'm':
			b.WriteString(pad2(int(t.Month())))
		case 'M':
			b.WriteString(t.Format("Jan"))
		case 'n':
			b.WriteString(strconv.Itoa(int(t.Month())))
		case 't':
			b.WriteString(strconv.Itoa(daysInMonth(t)))

		// Year
		case 'L':
			if isLeap(t.Year()) {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		case 'o':
			year, _ := t.ISOWeek()
			b.WriteString(strconv.Itoa(year))
		case 'Y':
			b.WriteString(strconv.Itoa(t.Year()))
		case 'y':
			b.WriteString(t.Format("06"))

		// Time
		case 'a':
			b.WriteString(t.Format("pm"))
		case 'A':
			b.WriteString(t.Format("PM"))
		case 'g':
			b.WriteString(t.Format("3"))
		case 'G':
			b.WriteString(strconv.Itoa(t.Hour()))
		case 'h':
			b.WriteString(t.Format("03"))
		case 'H':
			b.WriteString(pad2(t.Hour()))
		case 'i':
			b.WriteString(pad2(t.Minute()))
		case 's':
			b.WriteString(pad2(t.Second()))
		case 'u':
			b.WriteString(fmt.Sprintf("%06d", t.Nanosecond()/int(time.Microsecond)))
		case 'v':
			b.WriteString(fmt.Sprintf("%03d", t.Nanosecond()/int(time.Millisecond)))

		// Timezone
		case 'e':
			b.WriteString(t.Location().String())
		case 'I':
			if t.IsDST() {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		case 'O':
			b.WriteString(t.Format("-0700"))
		case 'P':
			b.WriteString(t.Format("-07:00"))
		case 'T':
			b.WriteString(t.Format("MST"))
		case 'Z':
			_, offset := t.Zone()
			b.WriteString(strconv.Itoa(offset))

		// Full date/time
		case 'c':
			b.WriteString(t.Format("2006-01-02T15:04:05-07:00"))
		case 'r':
			b.WriteString(t.Format("Mon, 02 Jan 2006 15:04:05 -0700"))
		case 'U':
			b.WriteString(strconv.FormatInt(t.Unix(), 10))

		default:
			b.WriteRune(c)
		}
	}

	return b.String()
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func isoWeekday(t time.Time) int {
	if t.Weekday() == time.Sunday {
		return 7
	}
	return int(t.Weekday())
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
