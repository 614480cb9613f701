package cpf

// Format renders a body and its check digits as DDD.DDD.DDD-VV.
func Format(body string, v CheckDigitPair) string {
	b := make([]byte, 0, 14)
	b = append(b, body[0:3]...)
	b = append(b, '.')
	b = append(b, body[3:6]...)
	b = append(b, '.')
	b = append(b, body[6:9]...)
	b = append(b, '-', v[0], v[1])
	return string(b)
}
