package form

// Rule sets for the three form types. Field names match the store
// document keys.

func RegisterRules() Rules {
	return Rules{
		"nombre": {
			Tag:      "required",
			Messages: map[string]string{"required": "El nombre es obligatorio"},
		},
		"email": {
			Tag: "required,email",
			Messages: map[string]string{
				"required": "El email es obligatorio",
				"email":    "El email no es válido",
			},
		},
		"password": {
			Tag: "required,min=6",
			Messages: map[string]string{
				"required": "El password es obligatorio",
				"min":      "El password debe tener al menos 6 caracteres",
			},
		},
	}
}

func LoginRules() Rules {
	rules := RegisterRules()
	delete(rules, "nombre")
	return rules
}

func ProductRules() Rules {
	return Rules{
		"nombre": {
			Tag:      "required",
			Messages: map[string]string{"required": "El nombre es obligatorio"},
		},
		"empresa": {
			Tag:      "required",
			Messages: map[string]string{"required": "La empresa es obligatoria"},
		},
		"url": {
			Tag: "required,url",
			Messages: map[string]string{
				"required": "La URL es obligatoria",
				"url":      "La URL no es válida",
			},
		},
		"descripcion": {
			Tag:      "required",
			Messages: map[string]string{"required": "La descripción es obligatoria"},
		},
	}
}
