package entity

// FallbackCategory is used when no better category is known.
const FallbackCategory = "Outros"

// DefaultCategories is the built-in category list offered to every user.
var DefaultCategories = []string{
	"Alimentação",
	"Transporte",
	"Moradia",
	"Saúde",
	"Educação",
	"Entretenimento",
	"Compras",
	"Investimentos",
	"Salário",
	"Freelance",
	FallbackCategory,
}
