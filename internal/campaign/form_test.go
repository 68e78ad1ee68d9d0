package campaign

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func validForm() Form {
	return Form{
		Title:         "Ayuda para Juan",
		Slug:          "ayuda-para-juan",
		Description:   "Juan necesita una operación urgente y no tiene cobertura.",
		GoalDisplay:   "$150.000",
		GoalAmount:    150000,
		Province:      "Buenos Aires",
		City:          "La Plata",
		RecipientName: "Juan Pérez",
		RecipientAge:  34,
		CreatorName:   "María Pérez",
		Tags:          []string{"salud"},
		Images:        []string{"https://cdn.example.com/uploads/a.jpg"},
	}
}

func TestFormValidate(t *testing.T) {
	v := validator.New()

	t.Run("valid form has no errors", func(t *testing.T) {
		form := validForm()
		assert.Empty(t, form.Validate(v))
	})

	tests := []struct {
		name        string
		mutate      func(*Form)
		expectedKey string
	}{
		{
			name:        "title too short",
			mutate:      func(f *Form) { f.Title = "Hola" },
			expectedKey: "title",
		},
		{
			name:        "description too short",
			mutate:      func(f *Form) { f.Description = "muy corto" },
			expectedKey: "description",
		},
		{
			name:        "zero goal",
			mutate:      func(f *Form) { f.GoalAmount = 0 },
			expectedKey: "goalAmount",
		},
		{
			name:        "missing province",
			mutate:      func(f *Form) { f.Province = "" },
			expectedKey: "province",
		},
		{
			name:        "missing recipient name",
			mutate:      func(f *Form) { f.RecipientName = "" },
			expectedKey: "recipientName",
		},
		{
			name:        "no images",
			mutate:      func(f *Form) { f.Images = nil },
			expectedKey: "images",
		},
		{
			name: "too many tags",
			mutate: func(f *Form) {
				f.Tags = make([]string, 11)
			},
			expectedKey: "tags",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)
			fieldErrors := form.Validate(v)
			assert.Contains(t, fieldErrors, tt.expectedKey)
		})
	}
}

func TestFormValidateMessagesAreSpanish(t *testing.T) {
	v := validator.New()
	form := validForm()
	form.Title = ""
	form.GoalAmount = 0

	fieldErrors := form.Validate(v)
	assert.Equal(t, "el título es obligatorio (mínimo 5 caracteres)", fieldErrors["title"])
	assert.Equal(t, "ingresá un monto objetivo mayor a cero", fieldErrors["goalAmount"])
}

func TestFormInput(t *testing.T) {
	form := validForm()
	input := form.Input()

	assert.Equal(t, form.Title, input.Title)
	assert.Equal(t, form.Slug, input.Slug)
	assert.Equal(t, form.GoalAmount, input.GoalAmount)
	assert.Equal(t, form.Province, input.Location.Province)
	assert.Equal(t, form.City, input.Location.City)
	assert.Equal(t, form.RecipientName, input.Recipient.Name)
	assert.Equal(t, form.RecipientAge, input.Recipient.Age)
	assert.Equal(t, form.CreatorName, input.Creator.Name)
	assert.Equal(t, form.Images, input.Images)
	assert.Equal(t, form.Tags, input.Tags)
}
