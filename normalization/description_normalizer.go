package normalization

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DescriptionNormalizer нормализует свободные описания товаров для нечеткого
// сопоставления с каталогом. Правила намеренно отличаются от NormalizeName
// (нижний регистр вместо верхнего, другой класс символов) — эти два вида
// нормализации не объединяются.
type DescriptionNormalizer struct {
	fillerPatterns []*regexp.Regexp
}

// defaultFillerPatterns возвращает упорядоченный список шаблонов-паразитов:
// служебные префиксы и хвостовые квалификаторы, не несущие смысла при
// сопоставлении. Применяются по порядку и повторно, пока текст не
// стабилизируется.
func defaultFillerPatterns() []*regexp.Regexp {
	return []*regexp.Regexp{
		// Префиксы-метки
		regexp.MustCompile(`^\s*product\s*:\s*`),
		regexp.MustCompile(`^\s*item\s*:\s*`),
		regexp.MustCompile(`^\s*товар\s*:\s*`),
		regexp.MustCompile(`^\s*позиция\s*:\s*`),
		// Хвостовые квалификаторы состояния
		regexp.MustCompile(`\s*\(\s*new\s*\)\s*$`),
		regexp.MustCompile(`\s*\(\s*used\s*\)\s*$`),
		regexp.MustCompile(`\s*\(\s*нов\.?\s*\)\s*$`),
		regexp.MustCompile(`\s*\(\s*б/у\s*\)\s*$`),
	}
}

// NewDescriptionNormalizer создает нормализатор описаний со стандартным
// набором шаблонов-паразитов.
func NewDescriptionNormalizer() *DescriptionNormalizer {
	return &DescriptionNormalizer{
		fillerPatterns: defaultFillerPatterns(),
	}
}

// NewDescriptionNormalizerWithPatterns создает нормализатор с дополнительными
// шаблонами-паразитами поверх стандартных. Шаблоны применяются в порядке
// регистрации.
func NewDescriptionNormalizerWithPatterns(extra []*regexp.Regexp) *DescriptionNormalizer {
	patterns := defaultFillerPatterns()
	patterns = append(patterns, extra...)
	return &DescriptionNormalizer{
		fillerPatterns: patterns,
	}
}

// Normalize выполняет полную нормализацию описания товара:
//  1. Приведение Unicode к форме NFC
//  2. Нижний регистр
//  3. Удаление шаблонов-паразитов (повторно, до стабилизации)
//  4. Удаление всего, кроме букв, цифр, пробелов, дефисов и слешей
//  5. Схлопывание пробелов
//
// Шаблоны-паразиты применяются до фильтрации символов, поскольку опираются
// на двоеточия и скобки, которые фильтрация удаляет.
func (dn *DescriptionNormalizer) Normalize(raw string) string {
	s := norm.NFC.String(raw)
	s = strings.ToLower(s)
	s = dn.stripFillers(s)

	// Оставляем только буквы, цифры, пробелы, дефисы и слеши.
	// Остальные символы заменяем пробелом, чтобы не склеивать слова.
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '-' || r == '/':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	s = b.String()

	return strings.Join(strings.Fields(s), " ")
}

// stripFillers применяет шаблоны-паразиты по порядку и повторяет проход,
// пока текст не перестанет меняться. Повтор нужен для вложенных меток
// вида "product: item: дрель".
func (dn *DescriptionNormalizer) stripFillers(s string) string {
	for {
		before := s
		for _, p := range dn.fillerPatterns {
			s = p.ReplaceAllString(s, " ")
		}
		if s == before {
			return s
		}
	}
}
