// Package spanishid valida los identificadores fiscales españoles que aparecen
// en contratos y facturas: DNI (personas físicas), NIE (extranjeros) y CIF
// (personas jurídicas). Cada formato lleva su propio dígito/letra de control.
package spanishid

import (
	"strconv"
	"strings"
)

// dniLetters tabla de letras de control del DNI/NIE, indexada por número mod 23.
const dniLetters = "TRWAGMYFPDXBNJZSQVHLCKE"

// cifControlLetters letras de control del CIF, indexadas por el dígito de control.
const cifControlLetters = "JABCDEFGHI"

// Kind clase de identificador detectada por Classify.
type Kind string

const (
	KindDNI     Kind = "DNI"
	KindNIE     Kind = "NIE"
	KindCIF     Kind = "CIF"
	KindUnknown Kind = ""
)

// Normalize deja el identificador en mayúsculas y sin espacios ni guiones.
func Normalize(id string) string {
	s := strings.ToUpper(strings.TrimSpace(id))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}

// Classify detecta la clase de identificador por su forma (no valida el control).
func Classify(id string) Kind {
	s := Normalize(id)
	if len(s) != 9 {
		return KindUnknown
	}
	first := s[0]
	switch {
	case first >= '0' && first <= '9':
		return KindDNI
	case first == 'X' || first == 'Y' || first == 'Z':
		return KindNIE
	case strings.ContainsRune("ABCDEFGHJKLMNPQRSUVW", rune(first)):
		return KindCIF
	}
	return KindUnknown
}

// IsValid valida el identificador contra el checksum de su clase.
func IsValid(id string) bool {
	switch Classify(id) {
	case KindDNI:
		return IsValidDNI(id)
	case KindNIE:
		return IsValidNIE(id)
	case KindCIF:
		return IsValidCIF(id)
	}
	return false
}

// IsValidDNI valida un DNI: 8 dígitos y letra de control = letras[n % 23].
func IsValidDNI(id string) bool {
	s := Normalize(id)
	if len(s) != 9 {
		return false
	}
	num, err := strconv.Atoi(s[:8])
	if err != nil {
		return false
	}
	return s[8] == dniLetters[num%23]
}

// IsValidNIE valida un NIE: X/Y/Z inicial se sustituye por 0/1/2 y se aplica
// la misma regla de control que el DNI.
func IsValidNIE(id string) bool {
	s := Normalize(id)
	if len(s) != 9 {
		return false
	}
	var prefix string
	switch s[0] {
	case 'X':
		prefix = "0"
	case 'Y':
		prefix = "1"
	case 'Z':
		prefix = "2"
	default:
		return false
	}
	num, err := strconv.Atoi(prefix + s[1:8])
	if err != nil {
		return false
	}
	return s[8] == dniLetters[num%23]
}

// IsValidCIF valida un CIF: letra de organización + 7 dígitos + control.
//
// El control se calcula sumando los dígitos pares tal cual y los impares
// doblados (sumando los dígitos del resultado, estilo Luhn); el control es
// (10 - suma % 10) % 10. Según la letra de organización el control debe ser
// dígito (A, B, E, H), letra (P, Q, R, S, N, W) o cualquiera de los dos.
func IsValidCIF(id string) bool {
	s := Normalize(id)
	if len(s) != 9 {
		return false
	}
	org := s[0]
	if !strings.ContainsRune("ABCDEFGHJKLMNPQRSUVW", rune(org)) {
		return false
	}
	sum := 0
	for i := 1; i <= 7; i++ {
		d := int(s[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		if i%2 == 0 {
			// posiciones pares: se suman tal cual
			sum += d
		} else {
			// posiciones impares: doble, sumando los dígitos del resultado
			dd := d * 2
			sum += dd/10 + dd%10
		}
	}
	control := (10 - sum%10) % 10
	got := s[8]

	digitOK := got == byte('0'+control)
	letterOK := got == cifControlLetters[control]

	switch {
	case strings.ContainsRune("PQRSNW", rune(org)):
		return letterOK
	case strings.ContainsRune("ABEH", rune(org)):
		return digitOK
	default:
		return digitOK || letterOK
	}
}
