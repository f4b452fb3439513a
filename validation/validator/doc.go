// Package validator parses request payloads into DTOs and checks them against
// declarative field rules (go-playground/validator `validate` tags).
//
// Validators are resolved by resource tag from a Registry filled at startup:
//
//	reg := validator.NewRegistry()
//	reg.Register("post", validator.NewStructValidator())
//
//	dto, err := validator.Parse[structs.PostDto](raw)
//	if v, ok := reg.Lookup("post"); ok {
//	    violations := v.Validate(dto)
//	}
package validator
