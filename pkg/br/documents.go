// Package br normaliza documentos y códigos brasileños usados en la configuración de la tienda
// (CEP, CNPJ y UF).
package br

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrInvalidCEP el CEP no tiene 8 dígitos.
	ErrInvalidCEP = errors.New("br: CEP debe tener 8 dígitos")
	// ErrInvalidCNPJ el CNPJ no tiene 14 dígitos.
	ErrInvalidCNPJ = errors.New("br: CNPJ debe tener 14 dígitos")
	// ErrInvalidUF la UF no tiene 2 letras.
	ErrInvalidUF = errors.New("br: UF debe tener 2 letras")
)

// CEPDigits extrae los 8 dígitos de un CEP ("01310-100", "01310100", "01.310-100").
func CEPDigits(cep string) (string, error) {
	digits := extractDigits(cep)
	if len(digits) != 8 {
		return "", fmt.Errorf("%w, se encontraron %d", ErrInvalidCEP, len(digits))
	}
	return digits, nil
}

// NormalizeCEP devuelve el CEP en formato NNNNN-NNN.
func NormalizeCEP(cep string) (string, error) {
	d, err := CEPDigits(cep)
	if err != nil {
		return "", err
	}
	return d[:5] + "-" + d[5:], nil
}

// NormalizeCNPJ devuelve el CNPJ en formato NN.NNN.NNN/NNNN-NN.
// Solo se valida la cantidad de dígitos.
func NormalizeCNPJ(cnpj string) (string, error) {
	d := extractDigits(cnpj)
	if len(d) != 14 {
		return "", fmt.Errorf("%w, se encontraron %d", ErrInvalidCNPJ, len(d))
	}
	return fmt.Sprintf("%s.%s.%s/%s-%s", d[:2], d[2:5], d[5:8], d[8:12], d[12:]), nil
}

// NormalizeUF devuelve la sigla del estado en mayúsculas.
func NormalizeUF(uf string) (string, error) {
	uf = strings.ToUpper(strings.TrimSpace(uf))
	if len(uf) != 2 || !unicode.IsLetter(rune(uf[0])) || !unicode.IsLetter(rune(uf[1])) {
		return "", ErrInvalidUF
	}
	return uf, nil
}

func extractDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
