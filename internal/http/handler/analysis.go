package handler

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"resumatch/internal/model"
	"resumatch/internal/service"
)

// dataResponse wraps a single result.
type dataResponse[T any] struct {
	Data T `json:"data"`
}

// matchRequest is the body of POST /match.
type matchRequest struct {
	Resume resumeInput `json:"resume"`
	JD     string      `json:"jd"`
}

// resumeInput accepts either a full parsed record ({"sections": {...}}) or a bare
// section map ({"skills": [...], "experience": [...]}). Unknown keys are ignored.
type resumeInput struct {
	model.ResumeRecord
}

func (r *resumeInput) UnmarshalJSON(b []byte) error {
	var rec model.ResumeRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return err
	}
	if len(rec.Sections) == 0 {
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		for key, val := range raw {
			name := model.SectionName(key)
			if !name.Valid() {
				continue
			}
			var entries []string
			if err := json.Unmarshal(val, &entries); err != nil {
				return err
			}
			if len(entries) == 0 {
				continue
			}
			if rec.Sections == nil {
				rec.Sections = make(map[model.SectionName][]string)
			}
			rec.Sections[name] = entries
		}
	}
	r.ResumeRecord = rec
	return nil
}

// upload is an in-memory multipart "file" field.
type upload struct {
	filename    string
	contentType string
	data        []byte
}

// uploadError carries the error code reported for a bad multipart request.
type uploadError struct {
	code    string
	message string
}

func (e *uploadError) Error() string { return e.message }

// readUpload loads the multipart "file" field into memory. The app body limit bounds its size.
func readUpload(c *fiber.Ctx) (*upload, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, &uploadError{code: "FILE_REQUIRED", message: "file is required"}
	}
	f, err := fh.Open()
	if err != nil {
		return nil, &uploadError{code: "FILE_OPEN_ERROR", message: "cannot open uploaded file"}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &uploadError{code: "FILE_OPEN_ERROR", message: "cannot read uploaded file"}
	}
	return &upload{
		filename:    fh.Filename,
		contentType: uploadContentType(fh.Header.Get("Content-Type")),
		data:        data,
	}, nil
}

func writeUploadError(c *fiber.Ctx, err error) error {
	var ue *uploadError
	if errors.As(err, &ue) {
		return writeError(c, fiber.StatusBadRequest, ue.code, ue.message)
	}
	return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "bad request")
}

type parseFunc func(c *fiber.Ctx, filename, contentType string, data []byte) (*model.ResumeRecord, error)

func parseHandler(parse parseFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		up, err := readUpload(c)
		if err != nil {
			return writeUploadError(c, err)
		}
		rec, err := parse(c, up.filename, up.contentType, up.data)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(dataResponse[*model.ResumeRecord]{Data: rec})
	}
}

// ParseResume parses an uploaded resume (PDF, DOCX or plain text).
//
// @Summary  Parse a resume
// @Tags     analysis
// @Accept   multipart/form-data
// @Produce  json
// @Param    file formData file true "resume"
// @Success  200 {object} dataResponse[model.ResumeRecord]
// @Failure  400 {object} errorPayload
// @Failure  415 {object} errorPayload
// @Router   /resumes/parse [post]
func ParseResume(svc service.AnalysisService) fiber.Handler {
	return parseHandler(func(c *fiber.Ctx, filename, ct string, data []byte) (*model.ResumeRecord, error) {
		return svc.ParseResume(c.UserContext(), filename, ct, data)
	})
}

// ParseLinkedIn parses a LinkedIn profile exported as PDF.
//
// @Summary  Parse a LinkedIn PDF export
// @Tags     analysis
// @Accept   multipart/form-data
// @Produce  json
// @Param    file formData file true "profile PDF"
// @Success  200 {object} dataResponse[model.ResumeRecord]
// @Failure  400 {object} errorPayload
// @Failure  415 {object} errorPayload
// @Router   /linkedin/parse [post]
func ParseLinkedIn(svc service.AnalysisService) fiber.Handler {
	return parseHandler(func(c *fiber.Ctx, filename, ct string, data []byte) (*model.ResumeRecord, error) {
		return svc.ParseLinkedIn(c.UserContext(), filename, ct, data)
	})
}

// ParseStoredResume parses a resume previously stored through POST /documents.
//
// @Summary  Parse a stored resume
// @Tags     analysis
// @Produce  json
// @Param    id path string true "document id"
// @Success  200 {object} dataResponse[model.ResumeRecord]
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /documents/{id}/parse [post]
func ParseStoredResume(svc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rec, err := svc.ParseStoredResume(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(dataResponse[*model.ResumeRecord]{Data: rec})
	}
}

// ExtractJobDescription returns the text of an uploaded PDF job description.
//
// @Summary  Extract job description text
// @Tags     analysis
// @Accept   multipart/form-data
// @Produce  json
// @Param    file formData file true "job description PDF"
// @Success  200 {object} dataResponse[string]
// @Failure  400 {object} errorPayload
// @Failure  415 {object} errorPayload
// @Router   /jd/extract [post]
func ExtractJobDescription(svc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		up, err := readUpload(c)
		if err != nil {
			return writeUploadError(c, err)
		}
		text, err := svc.ExtractJobDescription(c.UserContext(), up.filename, up.contentType, up.data)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(dataResponse[string]{Data: text})
	}
}

// MatchResume scores a parsed resume against job description text.
//
// @Summary  Match a resume against a job description
// @Tags     analysis
// @Accept   json
// @Produce  json
// @Param    body body matchRequest true "resume sections and job description"
// @Success  200 {object} model.MatchResult
// @Failure  400 {object} errorPayload
// @Failure  502 {object} errorPayload
// @Failure  504 {object} errorPayload
// @Router   /match [post]
func MatchResume(svc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req matchRequest
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON with resume and jd")
		}
		res, err := svc.Match(c.UserContext(), req.Resume.ResumeRecord, req.JD)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}
