package employee

import (
	"fmt"
	"strconv"
)

const EmployeeCodePrefix = "EMP"

// NextEmployeeCode takes the largest trailing number found in codes, adds
// one and formats it as EMP%03d. Codes without a numeric suffix are ignored.
func NextEmployeeCode(codes []string) string {
	highest := 0
	for _, code := range codes {
		i := len(code)
		for i > 0 && code[i-1] >= '0' && code[i-1] <= '9' {
			i--
		}
		if i == len(code) {
			continue
		}
		n, err := strconv.Atoi(code[i:])
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%03d", EmployeeCodePrefix, highest+1)
}
