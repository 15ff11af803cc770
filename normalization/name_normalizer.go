package normalization

import (
	"strings"
	"unicode"
)

// Символы пунктуации, удаляемые из названий контрагентов.
// Список фиксированный: запятая, точка, одинарная и двойная кавычки.
// Любое изменение этого списка меняет классы эквивалентности нормализованных
// названий и требует атомарной перенормализации всех сохраненных эталонов.
const namePunctuation = ",.'\""

// NormalizeName приводит название контрагента к канонической форме.
// Порядок шагов фиксирован — выход каждого шага является входом следующего,
// перестановка шагов меняет результат:
//  1. Обрезка пробелов по краям
//  2. Приведение к верхнему регистру (без учета локали)
//  3. Удаление фиксированной пунктуации
//  4. Схлопывание последовательностей пробелов в один пробел
//  5. Схлопывание последовательностей дефисов в один дефис
//  6. Повторная обрезка пробелов
//
// Функция чистая и детерминированная: одинаковый вход дает побайтово
// одинаковый выход на всех платформах. Нормализованные значения используются
// одновременно как ключи хранения и ключи сравнения.
func NormalizeName(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ToUpper(s)

	// Удаляем пунктуацию
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(namePunctuation, r) {
			return -1
		}
		return r
	}, s)

	// Схлопываем пробелы
	s = strings.Join(strings.Fields(s), " ")

	// Схлопываем дефисы
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}

	return strings.TrimSpace(s)
}

// NormalizeIdentifier приводит идентификатор (ИНН/TIN) к канонической форме:
// обрезка пробелов, верхний регистр, удаление пробельных символов, точек,
// дефисов и слешей. Других преобразований нет — после удаления разделителей
// идентификатор считается непрозрачным токеном и сравнивается только на
// точное равенство.
func NormalizeIdentifier(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ToUpper(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			continue
		case r == '.' || r == '-' || r == '/':
			continue
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}
