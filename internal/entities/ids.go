package entities

import "strconv"

// FormatID строковое представление идентификатора для ключей и имен каналов.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
