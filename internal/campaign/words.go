package campaign

import "strings"

// Spanish cardinal tables. 0–29 are irregular enough to spell out; the
// apocopated forms ("un", "veintiún") are used before a masculine noun, which
// is always the case here (pesos, mil, millones).
var smallNumbers = [30]string{
	"cero", "uno", "dos", "tres", "cuatro", "cinco", "seis", "siete", "ocho", "nueve",
	"diez", "once", "doce", "trece", "catorce", "quince", "dieciséis", "diecisiete", "dieciocho", "diecinueve",
	"veinte", "veintiuno", "veintidós", "veintitrés", "veinticuatro", "veinticinco", "veintiséis", "veintisiete", "veintiocho", "veintinueve",
}

var tens = [10]string{
	"", "", "", "treinta", "cuarenta", "cincuenta", "sesenta", "setenta", "ochenta", "noventa",
}

var hundreds = [10]string{
	"", "ciento", "doscientos", "trescientos", "cuatrocientos", "quinientos",
	"seiscientos", "setecientos", "ochocientos", "novecientos",
}

// AmountInWords narrates a goal amount in Argentine pesos, e.g.
// 1 → "un peso argentino", 150000 → "ciento cincuenta mil pesos argentinos".
func AmountInWords(amount int64) string {
	if amount < 0 {
		return "menos " + AmountInWords(-amount)
	}

	unit := "pesos argentinos"
	if amount == 1 {
		unit = "peso argentino"
	}

	words := cardinal(amount, true)
	// Exact millions take "de": "un millón de pesos argentinos".
	if amount >= 1_000_000 && amount%1_000_000 == 0 {
		return words + " de " + unit
	}
	return words + " " + unit
}

// cardinal spells a non-negative number below one billion (1e12). apocope
// requests "un"/"veintiún" in the final position.
func cardinal(n int64, apocope bool) string {
	if n == 0 {
		return smallNumbers[0]
	}

	var parts []string

	if millions := n / 1_000_000; millions > 0 {
		if millions == 1 {
			parts = append(parts, "un millón")
		} else {
			parts = append(parts, cardinal(millions, true)+" millones")
		}
		n %= 1_000_000
	}

	if thousands := n / 1000; thousands > 0 {
		if thousands == 1 {
			parts = append(parts, "mil")
		} else {
			parts = append(parts, underThousand(thousands, true)+" mil")
		}
		n %= 1000
	}

	if n > 0 {
		parts = append(parts, underThousand(n, apocope))
	}

	return strings.Join(parts, " ")
}

func underThousand(n int64, apocope bool) string {
	if n == 100 {
		return "cien"
	}

	var parts []string
	if h := n / 100; h > 0 {
		parts = append(parts, hundreds[h])
		n %= 100
	}

	switch {
	case n == 0:
	case n < 30:
		parts = append(parts, small(n, apocope))
	default:
		word := tens[n/10]
		if rest := n % 10; rest > 0 {
			word += " y " + small(rest, apocope)
		}
		parts = append(parts, word)
	}

	return strings.Join(parts, " ")
}

func small(n int64, apocope bool) string {
	if apocope {
		switch n {
		case 1:
			return "un"
		case 21:
			return "veintiún"
		}
	}
	return smallNumbers[n]
}
