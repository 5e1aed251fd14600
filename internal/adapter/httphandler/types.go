package httphandler

// Wire shapes keep the keys of the store document.

type (
	Product struct {
		ID          string       `json:"id"`
		Nombre      string       `json:"nombre"`
		Empresa     string       `json:"empresa"`
		URL         string       `json:"url"`
		URLImage    string       `json:"urlImage"`
		Descripcion string       `json:"descripcion"`
		Creado      int64        `json:"creado"`
		Creador     Creador      `json:"creador"`
		Votos       int          `json:"votos"`
		HaVotado    []string     `json:"haVotado"`
		Comentarios []Comentario `json:"comentarios"`
	}

	Creador struct {
		ID     string `json:"id"`
		Nombre string `json:"nombre"`
	}

	Comentario struct {
		Mensaje       string `json:"mensaje"`
		UsuarioID     string `json:"usuarioId"`
		UsuarioNombre string `json:"usuarioNombre"`
	}

	Usuario struct {
		ID     string `json:"id"`
		Nombre string `json:"nombre"`
		Email  string `json:"email"`
	}
)

type NewProduct struct {
	Nombre      string `json:"nombre"`
	Empresa     string `json:"empresa"`
	URL         string `json:"url"`
	URLImage    string `json:"urlImage"`
	Descripcion string `json:"descripcion"`
}

type NewComment struct {
	Mensaje string `json:"mensaje"`
}

type RegisterRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	Estado  string   `json:"estado"`
	Usuario *Usuario `json:"usuario,omitempty"`
	Token   string   `json:"token,omitempty"`
}

type TallyResponse struct {
	Votos int64 `json:"votos"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type InvalidFormResponse struct {
	Errores map[string]string `json:"errores"`
}
