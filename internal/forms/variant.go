package forms

import "fmt"

// RecipientMode selects who receives the notification email for a variant.
type RecipientMode int

const (
	// RecipientAdmin sends the notification to the address configured in the
	// settings store (contact form: the site owner reads the message).
	RecipientAdmin RecipientMode = iota
	// RecipientSubmitter sends the notification to the submitter's own address
	// (whitepaper: the document link goes back to the requester).
	RecipientSubmitter
)

// Variant describes one form flavor. The two WordPress plugins were
// near-identical copies; everything that differed between them lives here so a
// single pipeline can serve both.
type Variant struct {
	// Name is the short identifier used in settings keys and logs.
	Name string
	// Namespace is the URL namespace, e.g. POST /<namespace>/v1/submit/.
	Namespace string
	// RequiredFields are checked for presence before anything else runs.
	RequiredFields []string
	// TypeValues, when non-empty, restricts the "type" field to this enum.
	TypeValues []string
	// EmailSubject is the notification subject line.
	EmailSubject string
	// Recipient selects the notification target.
	Recipient RecipientMode
	// SuccessMessage is returned verbatim on a fully successful submission.
	SuccessMessage string
	// RelayIfEmpty controls whether the webhook relay is attempted even when no
	// endpoint is configured. The original contact plugin skipped the relay in
	// that case while the whitepaper plugin attempted it (and failed); making
	// the behavior an explicit flag keeps both deployable.
	RelayIfEmpty bool
}

// Settings keys, per variant. Mirrors the option names the plugins stored.
func (v Variant) SiteKeySetting() string    { return v.Name + "_recaptcha_site_key" }
func (v Variant) SecretKeySetting() string  { return v.Name + "_recaptcha_secret_key" }
func (v Variant) WebhookSetting() string    { return v.Name + "_webhook_endpoint" }
func (v Variant) AdminEmailSetting() string { return v.Name + "_email" }

// SettingKeys lists every settings-store key the variant reads.
func (v Variant) SettingKeys() []string {
	return []string{
		v.SiteKeySetting(),
		v.SecretKeySetting(),
		v.WebhookSetting(),
		v.AdminEmailSetting(),
	}
}

// AllowsType reports whether the given "type" value is valid for the variant.
// Variants without a type enum accept anything (the field is not required).
func (v Variant) AllowsType(value string) bool {
	if len(v.TypeValues) == 0 {
		return true
	}
	for _, t := range v.TypeValues {
		if t == value {
			return true
		}
	}
	return false
}

// Built-in variants.
var (
	Contact = Variant{
		Name:           "contact_form",
		Namespace:      "contact-form",
		RequiredFields: []string{"first_name", "last_name", "email", "message"},
		EmailSubject:   "New contact form submission",
		Recipient:      RecipientAdmin,
		SuccessMessage: "The contact_form was sent to your email!",
		RelayIfEmpty:   false,
	}

	Whitepaper = Variant{
		Name:           "whitepaper",
		Namespace:      "whitepaper",
		RequiredFields: []string{"first_name", "last_name", "email", "type"},
		TypeValues:     []string{"dentapreg", "fibrafill"},
		EmailSubject:   "Your Whitepaper Is Ready to Download!",
		Recipient:      RecipientSubmitter,
		SuccessMessage: "The whitepaper was sent to your email!",
		RelayIfEmpty:   true,
	}
)

// All returns every registered variant.
func All() []Variant {
	return []Variant{Contact, Whitepaper}
}

// ByNamespace looks up a variant by its URL namespace.
func ByNamespace(ns string) (Variant, error) {
	for _, v := range All() {
		if v.Namespace == ns {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("unknown form variant: %s", ns)
}
