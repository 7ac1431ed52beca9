// Package errors provides coded errors for pokesearch.
//
// Every layer returns *Error values so callers can branch on a Code instead of
// matching strings:
//
//	err := errors.NotFoundf("pokemon %q not found", name)
//	err := errors.WrapWithCode(httpErr, errors.CodeUnavailable, "upstream request failed")
//
// Wrap keeps the code of an inner *Error and defaults to CodeInternal otherwise:
//
//	if err := client.GetSpecies(ctx, id); err != nil {
//	    return errors.Wrap(err, "failed to enrich species")
//	}
//
// # Error Checking
//
//	if errors.IsNotFound(err) {
//	    // show the "try another name" message
//	}
//	if errors.IsRetryable(err) {
//	    // a retry wrapper may try again
//	}
//
// Upstream HTTP statuses are translated with FromHTTPStatus.
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("BaseURL", cfg.BaseURL, vb)
//	errors.ValidatePositive("MaxConcurrency", cfg.MaxConcurrency, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Layer-Specific Guidelines
//
// Client layer:
//   - Map upstream statuses to codes (404 is NotFound, 5xx is Unavailable)
//   - Wrap transport and decode failures with the requested resource in the message
//
// Orchestrator layer:
//   - Validate inputs and return InvalidArgument errors
//   - Decide which failures are fatal (entity fetch) and which only drop a section
//
// Command layer:
//   - Show GetMessage to the user, log the full error
package errors
