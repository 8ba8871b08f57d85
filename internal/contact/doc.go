// Package contact implements the site contact relay: it validates a submitted
// form, forwards it to the configured email provider, and answers with the
// small JSON protocol the site's contact page expects.
//
// Two providers are supported. ResendSender posts to the Resend email API;
// FormSubmitSender forwards to FormSubmit's AJAX endpoint and can fall back
// to its plain form endpoint. Both satisfy Sender, so the HTTP handler never
// depends on provider details. Provider failures are reported as
// services.ErrUpstream wrapping a *ProviderError so the handler can surface
// the upstream details to the caller.
package contact
