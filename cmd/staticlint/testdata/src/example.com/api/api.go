package api

import "example.com/internal/models"

func good() models.Envelope {
	env := models.NewEnvelope(200, "post", "ok")
	env.Message = "changed"
	return env
}

func partial() models.Envelope {
	return models.Envelope{StatusCode: 500, Message: "Internal Server Error"}
}

func keyed() models.Envelope {
	return models.Envelope{
		StatusCode: 500,
		Success:    true, // want "Success is derived from StatusCode"
	}
}

func pointer() *models.Envelope {
	return &models.Envelope{Success: false} // want "Success is derived from StatusCode"
}

func unkeyed() models.Envelope {
	return models.Envelope{200, "post", "ok", true} // want "unkeyed models.Envelope literal"
}

func assign(env *models.Envelope) {
	env.Success = true // want "Success is derived from StatusCode"
}

type result struct {
	Success bool
}

func other() result {
	r := result{Success: true}
	r.Success = false
	return r
}
