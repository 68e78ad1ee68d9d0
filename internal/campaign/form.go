package campaign

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"causajusta/internal/upstream"
)

// Form is the campaign creation/edit payload as collected from the client.
// GoalDisplay is the formatted string the input shows; GoalAmount is the
// parsed value the fee breakdown and submission use.
type Form struct {
	Title         string   `json:"title" validate:"required,min=5,max=120"`
	Slug          string   `json:"slug" validate:"required,max=140"`
	Description   string   `json:"description" validate:"required,min=20"`
	GoalDisplay   string   `json:"goalDisplay"`
	GoalAmount    float64  `json:"goalAmount" validate:"required,gt=0"`
	Province      string   `json:"province" validate:"required"`
	City          string   `json:"city" validate:"required"`
	RecipientName string   `json:"recipientName" validate:"required"`
	RecipientAge  int      `json:"recipientAge" validate:"omitempty,gte=0,lte=130"`
	Condition     string   `json:"condition"`
	CreatorName   string   `json:"creatorName" validate:"required"`
	Relation      string   `json:"relation"`
	Contact       string   `json:"contact"`
	Tags          []string `json:"tags" validate:"max=10"`
	Images        []string `json:"images"`
}

// Spanish per-field messages, keyed by struct field.
var fieldMessages = map[string]string{
	"Title":         "el título es obligatorio (mínimo 5 caracteres)",
	"Slug":          "la URL de la campaña es obligatoria",
	"Description":   "contanos la historia de la campaña (mínimo 20 caracteres)",
	"GoalAmount":    "ingresá un monto objetivo mayor a cero",
	"Province":      "seleccioná una provincia",
	"City":          "ingresá una ciudad",
	"RecipientName": "ingresá el nombre de quien recibe la ayuda",
	"CreatorName":   "ingresá tu nombre",
	"Tags":          "hasta 10 etiquetas",
	"RecipientAge":  "edad inválida",
}

// Validate returns a field-keyed error map. Submission is allowed only when
// the map is empty; at least one uploaded image is part of that contract.
func (f *Form) Validate(v *validator.Validate) map[string]string {
	fieldErrors := map[string]string{}

	if err := v.Struct(f); err != nil {
		var invalid validator.ValidationErrors
		if ok := asValidationErrors(err, &invalid); ok {
			for _, fe := range invalid {
				key := jsonKey(fe.Field())
				if msg, ok := fieldMessages[fe.Field()]; ok {
					fieldErrors[key] = msg
				} else {
					fieldErrors[key] = "valor inválido"
				}
			}
		} else {
			fieldErrors["form"] = "no se pudo validar el formulario"
		}
	}

	if len(f.Images) == 0 {
		fieldErrors["images"] = "subí al menos una imagen"
	}

	return fieldErrors
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	ve, ok := err.(validator.ValidationErrors)
	if ok {
		*target = ve
	}
	return ok
}

func jsonKey(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// Input converts a validated form into the upstream payload.
func (f *Form) Input() upstream.CampaignInput {
	return upstream.CampaignInput{
		Title:       f.Title,
		Slug:        f.Slug,
		Description: f.Description,
		GoalAmount:  f.GoalAmount,
		Images:      f.Images,
		Location: upstream.CampaignLocation{
			Province: f.Province,
			City:     f.City,
		},
		Recipient: upstream.CampaignRecipient{
			Name:      f.RecipientName,
			Age:       f.RecipientAge,
			Condition: f.Condition,
		},
		Creator: upstream.CampaignCreator{
			Name:     f.CreatorName,
			Relation: f.Relation,
			Contact:  f.Contact,
		},
		Tags: f.Tags,
	}
}
