package openapi

import "maps"

// Names of the shared error responses registered by NewComponents.
const (
	BadRequest         = "BadRequest"
	NotFound           = "NotFound"
	PayloadTooLarge    = "PayloadTooLarge"
	InternalError      = "InternalError"
	BadGateway         = "BadGateway"
	ServiceUnavailable = "ServiceUnavailable"
)

const errorSchemaName = "Error"

// NewComponents returns components holding the {"error": "..."} payload and
// one shared response per error status the API produces.
func NewComponents() *Components {
	errorBody := func(description string) *Response {
		return &Response{
			Description: description,
			Content: map[string]*MediaType{
				"application/json": {Schema: SchemaRef(errorSchemaName)},
			},
		}
	}

	return &Components{
		Schemas: map[string]*Schema{
			errorSchemaName: {
				Type:     "object",
				Required: []string{"error"},
				Properties: map[string]*Schema{
					"error": {Type: "string", Description: "Error message"},
				},
			},
		},
		Responses: map[string]*Response{
			BadRequest:         errorBody("Invalid request"),
			NotFound:           errorBody("Resource not found"),
			PayloadTooLarge:    errorBody("Upload exceeds the size limit"),
			InternalError:      errorBody("Internal failure"),
			BadGateway:         errorBody("Text extraction failed"),
			ServiceUnavailable: errorBody("Storage unavailable"),
		},
	}
}

// AddSchemas merges schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// SchemaRef references a component schema.
func SchemaRef(name string) *Schema {
	return &Schema{Ref: "#/components/schemas/" + name}
}

// ResponseRef references a shared component response.
func ResponseRef(name string) *Response {
	return &Response{Ref: "#/components/responses/" + name}
}

// ResponseJSON is a JSON response whose body is schema.
func ResponseJSON(description string, schema *Schema) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			"application/json": {Schema: schema},
		},
	}
}

// ArrayOf is an array schema of the named component.
func ArrayOf(name string) *Schema {
	return &Schema{Type: "array", Items: SchemaRef(name)}
}

// MultipartFile is a required multipart/form-data body with one binary
// file field.
func MultipartFile(field, description string) *RequestBody {
	return &RequestBody{
		Required: true,
		Content: map[string]*MediaType{
			"multipart/form-data": {
				Schema: &Schema{
					Type:     "object",
					Required: []string{field},
					Properties: map[string]*Schema{
						field: {Type: "string", Format: "binary", Description: description},
					},
				},
			},
		},
	}
}

// PathParam is a required path parameter of the given type and format.
func PathParam(name, typ, format, description string) *Parameter {
	return &Parameter{
		Name:        name,
		In:          "path",
		Required:    true,
		Description: description,
		Schema:      &Schema{Type: typ, Format: format},
	}
}

// QueryParam is an optional query parameter of the given type.
func QueryParam(name, typ, description string) *Parameter {
	return &Parameter{
		Name:        name,
		In:          "query",
		Description: description,
		Schema:      &Schema{Type: typ},
	}
}
