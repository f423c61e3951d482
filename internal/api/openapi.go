package api

import (
	"github.com/campward/campward/pkg/openapi"
)

// buildSpec assembles the OpenAPI document for the API module.
func buildSpec(title, description, version, basePath string) *openapi.Spec {
	spec := openapi.NewSpec(title, version)
	spec.SetDescription(description)
	spec.AddServer(basePath)

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"Camp": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":                  {Type: "string", Format: "uuid"},
				"name":                {Type: "string"},
				"location":            {Type: "string"},
				"start_date":          {Type: "string", Format: "date-time"},
				"end_date":            {Type: "string", Format: "date-time"},
				"registration_cutoff": {Type: "string", Format: "date-time"},
				"max_group_size":      {Type: "integer"},
				"max_grade_spread":    {Type: "integer"},
			},
		},
		"Camper": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":             {Type: "string", Format: "uuid"},
				"camp_id":        {Type: "string", Format: "uuid"},
				"full_name":      {Type: "string"},
				"date_of_birth":  {Type: "string", Format: "date-time"},
				"reported_grade": {Type: "integer"},
				"status":         {Type: "string", Enum: []any{"registered", "cancelled"}},
			},
		},
		"Move": {
			Type:     "object",
			Required: []string{"camper_id"},
			Properties: map[string]*openapi.Schema{
				"camper_id":     {Type: "string", Format: "uuid"},
				"from_group_id": {Type: "string", Format: "uuid"},
				"to_group_id":   {Type: "string", Format: "uuid", Description: "Omit to move the camper to ungrouped"},
			},
		},
		"MoveCommand": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"moves":         {Type: "array", Items: openapi.SchemaRef("Move")},
				"version":       {Type: "integer", Description: "Expected session version; 0 skips the check"},
				"override_note": {Type: "string", Description: "Acknowledges violations involving the moved campers"},
			},
		},
		"GroupingState": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"session":    {Type: "object"},
				"campers":    {Type: "array", Items: openapi.SchemaRef("Camper")},
				"groups":     {Type: "array", Items: &openapi.Schema{Type: "object"}},
				"violations": {Type: "array", Items: &openapi.Schema{Type: "object"}},
			},
		},
	})

	paths := map[string]*openapi.PathItem{
		"/camps": {
			Get:  &openapi.Operation{Summary: "List camps", Tags: []string{"camps"}, Responses: map[int]*openapi.Response{200: openapi.ResponseJSON("Paginated camps", "Camp")}},
			Post: &openapi.Operation{Summary: "Create a camp", Tags: []string{"camps"}, RequestBody: openapi.RequestBodyJSON("Camp", true), Responses: map[int]*openapi.Response{201: openapi.ResponseJSON("Created camp", "Camp"), 400: openapi.ResponseRef("BadRequest")}},
		},
		"/camps/{id}": {
			Get:    &openapi.Operation{Summary: "Find a camp", Tags: []string{"camps"}, Parameters: []*openapi.Parameter{openapi.PathParam("id", "Camp ID")}, Responses: map[int]*openapi.Response{200: openapi.ResponseJSON("Camp", "Camp"), 404: openapi.ResponseRef("NotFound")}},
			Put:    &openapi.Operation{Summary: "Update a camp", Tags: []string{"camps"}, Parameters: []*openapi.Parameter{openapi.PathParam("id", "Camp ID")}, RequestBody: openapi.RequestBodyJSON("Camp", true), Responses: map[int]*openapi.Response{200: openapi.ResponseJSON("Updated camp", "Camp"), 404: openapi.ResponseRef("NotFound")}},
			Delete: &openapi.Operation{Summary: "Delete a camp", Tags: []string{"camps"}, Parameters: []*openapi.Parameter{openapi.PathParam("id", "Camp ID")}, Responses: map[int]*openapi.Response{204: {Description: "Deleted"}, 404: openapi.ResponseRef("NotFound")}},
		},
		"/campers": {
			Get:  &openapi.Operation{Summary: "List campers", Tags: []string{"campers"}, Responses: map[int]*openapi.Response{200: openapi.ResponseJSON("Paginated campers", "Camper")}},
			Post: &openapi.Operation{Summary: "Register a camper", Tags: []string{"campers"}, RequestBody: openapi.RequestBodyJSON("Camper", true), Responses: map[int]*openapi.Response{201: openapi.ResponseJSON("Registered camper", "Camper"), 400: openapi.ResponseRef("BadRequest")}},
		},
		"/campers/{id}": {
			Get:    &openapi.Operation{Summary: "Find a camper", Tags: []string{"campers"}, Parameters: []*openapi.Parameter{openapi.PathParam("id", "Camper ID")}, Responses: map[int]*openapi.Response{200: openapi.ResponseJSON("Camper", "Camper"), 404: openapi.ResponseRef("NotFound")}},
			Delete: &openapi.Operation{Summary: "Cancel a registration", Tags: []string{"campers"}, Parameters: []*openapi.Parameter{openapi.PathParam("id", "Camper ID")}, Responses: map[int]*openapi.Response{204: {Description: "Cancelled"}, 404: openapi.ResponseRef("NotFound")}},
		},
		"/campers/{id}/friends": {
			Post: &openapi.Operation{Summary: "Record a friend request", Tags: []string{"campers"}, Parameters: []*openapi.Parameter{openapi.PathParam("id", "Camper ID")}, Responses: map[int]*openapi.Response{201: {Description: "Friend request recorded"}, 400: openapi.ResponseRef("BadRequest")}},
		},
		"/grouping/{campId}": {
			Get: &openapi.Operation{Summary: "Grouping state", Tags: []string{"grouping"}, Parameters: []*openapi.Parameter{openapi.PathParam("campId", "Camp ID")}, Responses: map[int]*openapi.Response{200: openapi.ResponseJSON("Grouping state", "GroupingState"), 404: openapi.ResponseRef("NotFound")}},
		},
		"/grouping/{campId}/auto": {
			Post: &openapi.Operation{Summary: "Run the auto-grouping solver", Tags: []string{"grouping"}, Parameters: []*openapi.Parameter{openapi.PathParam("campId", "Camp ID")}, Responses: map[int]*openapi.Response{200: {Description: "Solver result"}, 409: openapi.ResponseRef("Conflict")}},
		},
		"/grouping/{campId}/validate": {
			Post: &openapi.Operation{Summary: "Validate a proposed move", Tags: []string{"grouping"}, Parameters: []*openapi.Parameter{openapi.PathParam("campId", "Camp ID")}, RequestBody: openapi.RequestBodyJSON("Move", true), Responses: map[int]*openapi.Response{200: {Description: "Validation result"}, 404: openapi.ResponseRef("NotFound")}},
		},
		"/grouping/{campId}/update": {
			Post: &openapi.Operation{Summary: "Commit manual moves", Tags: []string{"grouping"}, Parameters: []*openapi.Parameter{openapi.PathParam("campId", "Camp ID")}, RequestBody: openapi.RequestBodyJSON("MoveCommand", true), Responses: map[int]*openapi.Response{200: openapi.ResponseJSON("Updated state", "GroupingState"), 409: openapi.ResponseRef("Conflict")}},
		},
		"/grouping/{campId}/finalize": {
			Post: &openapi.Operation{Summary: "Finalize or unlock the session", Tags: []string{"grouping"}, Parameters: []*openapi.Parameter{openapi.PathParam("campId", "Camp ID")}, Responses: map[int]*openapi.Response{200: {Description: "Session"}, 409: openapi.ResponseRef("Conflict")}},
		},
		"/attendance/checkin": {
			Post: &openapi.Operation{Summary: "Check a camper in", Tags: []string{"attendance"}, Responses: map[int]*openapi.Response{201: {Description: "Attendance record"}, 409: openapi.ResponseRef("Conflict")}},
		},
		"/attendance/checkout": {
			Post: &openapi.Operation{Summary: "Check a camper out", Tags: []string{"attendance"}, Responses: map[int]*openapi.Response{200: {Description: "Attendance record"}, 400: openapi.ResponseRef("BadRequest")}},
		},
	}

	for path, item := range paths {
		spec.Paths[path] = item
	}

	return spec
}
