package openapi

import (
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
)

// Generate builds the OpenAPI 3.1 document for the aus-server API: the admin
// auth endpoints under /auth and the founder profile endpoints under
// /api/founder.
func Generate(baseURL string) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.1.0",
		Info: &openapi3.Info{
			Title:       "aus-server API",
			Description: "Admin authentication and founder profile API for the AUS site.",
			Version:     "1.0.0",
		},
		Servers: openapi3.Servers{
			{URL: baseURL},
		},
	}

	components := openapi3.NewComponents()
	components.Schemas = openapi3.Schemas{}
	components.SecuritySchemes = openapi3.SecuritySchemes{}
	doc.Components = &components

	doc.Components.SecuritySchemes["bearerAuth"] = &openapi3.SecuritySchemeRef{
		Value: &openapi3.SecurityScheme{
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}

	doc.Components.Schemas["ErrorResponse"] = &openapi3.SchemaRef{
		Value: objectSchema(openapi3.Schemas{
			"message": stringSchema(""),
		}),
	}
	doc.Components.Schemas["Admin"] = &openapi3.SchemaRef{
		Value: objectSchema(openapi3.Schemas{
			"id":         intSchema("int64"),
			"email":      stringSchema("email"),
			"superadmin": boolSchema(),
			"createdAt":  stringSchema("date-time"),
			"updatedAt":  stringSchema("date-time"),
		}),
	}
	doc.Components.Schemas["AdminSummary"] = &openapi3.SchemaRef{
		Value: objectSchema(openapi3.Schemas{
			"email":      stringSchema("email"),
			"superadmin": boolSchema(),
			"createdAt":  stringSchema("date-time"),
		}),
	}
	doc.Components.Schemas["Founder"] = &openapi3.SchemaRef{
		Value: objectSchema(openapi3.Schemas{
			"id":    intSchema("int64"),
			"name":  stringSchema(""),
			"title": stringSchema(""),
			"bio":   stringSchema(""),
			"image": stringSchema("uri"),
			"badges": {
				Value: &openapi3.Schema{
					Type:  &openapi3.Types{"array"},
					Items: &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}},
				},
			},
			"createdAt": stringSchema("date-time"),
			"updatedAt": stringSchema("date-time"),
		}),
	}
	doc.Components.Schemas["FounderPayload"] = &openapi3.SchemaRef{
		Value: objectSchema(openapi3.Schemas{
			"name":  stringSchema(""),
			"title": stringSchema(""),
			"bio":   stringSchema(""),
			"image": stringSchema("uri"),
			"badges": {
				Value: &openapi3.Schema{
					Description: "List of labels, or a single comma-separated string.",
					OneOf: openapi3.SchemaRefs{
						{Value: &openapi3.Schema{
							Type:  &openapi3.Types{"array"},
							Items: &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}},
						}},
						{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}},
					},
				},
			},
		}),
	}

	doc.Paths = openapi3.NewPaths()
	addAuthPaths(doc)
	addFounderPaths(doc)

	return doc
}

func addAuthPaths(doc *openapi3.T) {
	credentials := objectSchema(openapi3.Schemas{
		"email":    stringSchema("email"),
		"password": stringSchema("password"),
	})

	doc.Paths.Set("/auth/login-admin", &openapi3.PathItem{
		Post: operation("auth", "Log in as an admin",
			"Authenticate with email and password. Returns a bearer token valid for 24 hours.",
			"login_admin",
			jsonBody(credentials),
			responses("200", "Login result with bearer token", objectSchema(openapi3.Schemas{
				"message": stringSchema(""),
				"admin": {Value: objectSchema(openapi3.Schemas{
					"email":      stringSchema("email"),
					"superadmin": boolSchema(),
				})},
				"token": stringSchema(""),
			}), 400, 401),
			false),
	})

	doc.Paths.Set("/auth/register-admin", &openapi3.PathItem{
		Post: operation("auth", "Register a new admin",
			"Create a new admin account. Superadmin only. Registration does not start a session.",
			"register_admin",
			jsonBody(credentials),
			responses("201", "Created admin", objectSchema(openapi3.Schemas{
				"message": stringSchema(""),
				"admin": {Value: objectSchema(openapi3.Schemas{
					"email": stringSchema("email"),
				})},
			}), 400, 401, 403, 409),
			true),
	})

	doc.Paths.Set("/auth/me", &openapi3.PathItem{
		Get: operation("auth", "Current admin",
			"Return the authenticated admin's public fields.",
			"get_current_admin",
			nil,
			responses("200", "Authenticated admin", refSchema("Admin"), 401),
			true),
	})

	doc.Paths.Set("/auth/change-password", &openapi3.PathItem{
		Post: operation("auth", "Change own password",
			"Rotate the authenticated admin's password. Outstanding tokens are revoked and a fresh token is returned.",
			"change_password",
			jsonBody(objectSchema(openapi3.Schemas{
				"currentPassword": stringSchema("password"),
				"newPassword":     stringSchema("password"),
			})),
			responses("200", "New bearer token", objectSchema(openapi3.Schemas{
				"message": stringSchema(""),
				"token":   stringSchema(""),
			}), 400, 401),
			true),
	})

	resetPath := &openapi3.PathItem{
		Post: operation("auth", "Reset an admin's password",
			"Superadmin override of another admin's password. The target's outstanding tokens are revoked.",
			"reset_admin_password",
			jsonBody(objectSchema(openapi3.Schemas{
				"newPassword": stringSchema("password"),
			})),
			responses("200", "Reset confirmation", objectSchema(openapi3.Schemas{
				"message": stringSchema(""),
			}), 400, 401, 403, 404),
			true),
	}
	resetPath.Post.Parameters = openapi3.Parameters{idParameter("Admin row id")}
	doc.Paths.Set("/auth/admins/{id}/reset-password", resetPath)

	doc.Paths.Set("/auth/admins", &openapi3.PathItem{
		Get: operation("auth", "List admins",
			"All admin accounts projected to their public summary, most recent first. Superadmin only.",
			"list_admins",
			nil,
			responses("200", "Admin list", objectSchema(openapi3.Schemas{
				"admins": {Value: &openapi3.Schema{
					Type:  &openapi3.Types{"array"},
					Items: openapi3.NewSchemaRef("#/components/schemas/AdminSummary", nil),
				}},
			}), 401, 403),
			true),
	})
}

func addFounderPaths(doc *openapi3.T) {
	payloadRef := openapi3.NewSchemaRef("#/components/schemas/FounderPayload", nil)
	payloadBody := &openapi3.RequestBodyRef{
		Value: &openapi3.RequestBody{
			Required: true,
			Content:  openapi3.NewContentWithJSONSchemaRef(payloadRef),
		},
	}

	doc.Paths.Set("/api/founder", &openapi3.PathItem{
		Get: operation("founder", "Get the founder profile",
			"Returns the founder profile, or a JSON null body if none exists.",
			"get_founder",
			nil,
			responses("200", "Founder profile or null", refSchema("Founder")),
			false),
		Post: operation("founder", "Create the founder profile",
			"Write the founder profile. name, title, bio and image are required; a repeated create replaces the record.",
			"create_founder",
			payloadBody,
			responses("201", "Stored founder profile", refSchema("Founder"), 400),
			false),
		Put: operation("founder", "Update the founder profile",
			"Merge the fields present in a partial payload into the current profile.",
			"update_founder",
			payloadBody,
			responses("200", "Updated founder profile", refSchema("Founder"), 400, 404),
			false),
		Delete: operation("founder", "Delete the founder profile",
			"Remove the current profile.",
			"delete_founder",
			nil,
			noContentResponses(404),
			false),
	})

	byID := &openapi3.PathItem{
		Put: operation("founder", "Update the founder profile by id",
			"Merge the fields present in a partial payload into the profile with the given id.",
			"update_founder_by_id",
			payloadBody,
			responses("200", "Updated founder profile", refSchema("Founder"), 400, 404),
			false),
		Delete: operation("founder", "Delete the founder profile by id",
			"Remove the profile with the given id.",
			"delete_founder_by_id",
			nil,
			noContentResponses(400, 404),
			false),
	}
	byID.Parameters = openapi3.Parameters{idParameter("Founder row id")}
	doc.Paths.Set("/api/founder/{id}", byID)
}

// ---------------------------------------------------------------------------
// Schema and operation helpers
// ---------------------------------------------------------------------------

func objectSchema(props openapi3.Schemas) *openapi3.Schema {
	return &openapi3.Schema{
		Type:       &openapi3.Types{"object"},
		Properties: props,
	}
}

func stringSchema(format string) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}, Format: format}}
}

func intSchema(format string) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}, Format: format}}
}

func boolSchema() *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"boolean"}}}
}

func refSchema(name string) *openapi3.Schema {
	// Wrapper so responses() can take a plain schema; resolved via AllOf ref.
	return &openapi3.Schema{
		AllOf: openapi3.SchemaRefs{openapi3.NewSchemaRef("#/components/schemas/"+name, nil)},
	}
}

func jsonBody(schema *openapi3.Schema) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{
		Value: &openapi3.RequestBody{
			Required: true,
			Content:  openapi3.NewContentWithJSONSchema(schema),
		},
	}
}

func idParameter(description string) *openapi3.ParameterRef {
	return &openapi3.ParameterRef{
		Value: &openapi3.Parameter{
			Name:        "id",
			In:          "path",
			Required:    true,
			Description: description,
			Schema:      intSchema("int64"),
		},
	}
}

func operation(tag, summary, description, operationID string, body *openapi3.RequestBodyRef, resp *openapi3.Responses, secured bool) *openapi3.Operation {
	op := &openapi3.Operation{
		Tags:        []string{tag},
		Summary:     summary,
		Description: description,
		OperationID: operationID,
		RequestBody: body,
		Responses:   resp,
	}
	if secured {
		op.Security = &openapi3.SecurityRequirements{{"bearerAuth": {}}}
	}
	return op
}

func responses(statusCode, description string, schema *openapi3.Schema, errorCodes ...int) *openapi3.Responses {
	resp := openapi3.NewResponses()

	successDesc := description
	resp.Set(statusCode, &openapi3.ResponseRef{
		Value: &openapi3.Response{
			Description: &successDesc,
			Content:     openapi3.NewContentWithJSONSchema(schema),
		},
	})

	addErrorResponses(resp, errorCodes)
	return resp
}

func noContentResponses(errorCodes ...int) *openapi3.Responses {
	resp := openapi3.NewResponses()

	desc := "Deleted"
	resp.Set("204", &openapi3.ResponseRef{
		Value: &openapi3.Response{Description: &desc},
	})

	addErrorResponses(resp, errorCodes)
	return resp
}

func addErrorResponses(resp *openapi3.Responses, codes []int) {
	errorRef := openapi3.NewSchemaRef("#/components/schemas/ErrorResponse", nil)
	descriptions := map[int]string{
		400: "Bad request",
		401: "Unauthorized",
		403: "Forbidden",
		404: "Not found",
		409: "Conflict",
	}

	for _, code := range codes {
		desc := descriptions[code]
		resp.Set(strconv.Itoa(code), &openapi3.ResponseRef{
			Value: &openapi3.Response{
				Description: &desc,
				Content:     openapi3.NewContentWithJSONSchemaRef(errorRef),
			},
		})
	}

	serverErrDesc := "Internal server error"
	resp.Set("500", &openapi3.ResponseRef{
		Value: &openapi3.Response{
			Description: &serverErrDesc,
			Content:     openapi3.NewContentWithJSONSchemaRef(errorRef),
		},
	})
}
