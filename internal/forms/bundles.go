package forms

import (
	"a11ypack/internal/i18n"
	"a11ypack/internal/validation"
)

// FieldText is the copy of one field. Errors is keyed by validation.Reason.
type FieldText struct {
	Label       string
	Placeholder string
	BodyLabel   string
	Errors      map[string]string
}

// Bundle holds the copy of one form in one language.
type Bundle struct {
	TitleBefore    string
	TitleHighlight string
	TitleAfter     string
	Description    string
	Fields         map[string]FieldText
	SubmitLabel    string
	Submitting     string
	Success        string
	Failure        string
	Subject        string
	BodyHeader     []string
	BodyFooter     []string
}

// ErrorMessage returns the localized message for a field error, or "" when err is nil.
func (b Bundle) ErrorMessage(key string, err error) string {
	if err == nil {
		return ""
	}
	reason := validation.Reason(err)
	if msg, ok := b.Fields[key].Errors[reason]; ok {
		return msg
	}
	return b.Failure
}

// BundleFor returns the copy of a form in lang, falling back to English.
func BundleFor(formID string, lang i18n.Language) Bundle {
	byLang, ok := bundles[formID]
	if !ok {
		return Bundle{}
	}
	if bundle, ok := byLang[lang]; ok {
		return bundle
	}
	return byLang[i18n.DefaultLanguage]
}

var bundles = map[string]map[i18n.Language]Bundle{
	PackRequestID: {
		i18n.LanguageEnglish: {
			TitleBefore:    "Ready to Comply with ",
			TitleHighlight: "Accessibility Standards",
			TitleAfter:     "?",
			Description:    "Complete the form and we’ll contact you with all the information about our Web Accessibility Pack.",
			Fields: map[string]FieldText{
				"name": {
					Label: "Name *", Placeholder: "Enter your name", BodyLabel: "Name",
					Errors: map[string]string{"missing": "Name is required."},
				},
				"email": {
					Label: "Email *", Placeholder: "Enter your company email", BodyLabel: "Email",
					Errors: map[string]string{
						"missing": "Valid company email is required.",
						"format":  "Valid company email is required.",
					},
				},
				"company": {Label: "Company (optional)", Placeholder: "Company name", BodyLabel: "Company"},
				"phone": {
					Label: "Phone (optional)", Placeholder: "+01 XXX XXX XXX", BodyLabel: "Phone",
					Errors: map[string]string{"format": "Please enter a valid phone number."},
				},
				"robot": {
					Label:  "I'm not a robot",
					Errors: map[string]string{"consent": "Please confirm you're not a robot."},
				},
			},
			SubmitLabel: "Request Information",
			Submitting:  "Sending...",
			Success:     "Thank you! Your email client will open with the information pre-filled.",
			Failure:     "Error submitting form. Please try again.",
			Subject:     "Web Accessibility Pack Request",
		},
		i18n.LanguageSpanish: {
			TitleBefore:    "¿Listo para cumplir con la ",
			TitleHighlight: "normativa",
			TitleAfter:     "?",
			Description:    "Completa el formulario y nos pondremos en contacto contigo para ofrecerte toda la información sobre nuestro Pack Accesibilidad Web.",
			Fields: map[string]FieldText{
				"name": {
					Label: "Nombre *", Placeholder: "Ingresa tu nombre", BodyLabel: "Nombre",
					Errors: map[string]string{"missing": "El nombre es obligatorio."},
				},
				"email": {
					Label: "Correo electrónico *", Placeholder: "Ingresa tu correo de empresa", BodyLabel: "Correo electrónico",
					Errors: map[string]string{
						"missing": "Se requiere un correo de empresa válido.",
						"format":  "Se requiere un correo de empresa válido.",
					},
				},
				"company": {Label: "Empresa (opcional)", Placeholder: "Nombre de tu empresa", BodyLabel: "Empresa"},
				"phone": {
					Label: "Teléfono (opcional)", Placeholder: "+01 XXX XXX XXX", BodyLabel: "Teléfono",
					Errors: map[string]string{"format": "Por favor, introduce un número de teléfono válido."},
				},
				"robot": {
					Label:  "No soy un robot",
					Errors: map[string]string{"consent": "Por favor, confirma que no eres un robot."},
				},
			},
			SubmitLabel: "Solicitar información",
			Submitting:  "Enviando...",
			Success:     "¡Gracias! Tu cliente de correo se abrirá con la información prellenada.",
			Failure:     "Error al enviar el formulario. Por favor intenta nuevamente.",
			Subject:     "Solicitud Pack Accesibilidad Web",
		},
	},
	ContactID: {
		i18n.LanguageEnglish: {
			TitleBefore: "Let's Make Your Products Accessible to Everyone",
			Description: "Interested in making your digital products truly inclusive? Book a quick demo or meeting with our accessibility experts to explore how we can help you meet compliance, improve usability, and support every user. Learn how we partner with companies like yours to create accessible, high-impact experiences.",
			Fields: map[string]FieldText{
				"name": {
					Label: "Name (required)", Placeholder: "Enter your name", BodyLabel: "Full name",
					Errors: map[string]string{"missing": "Please enter a name"},
				},
				"phone": {
					Label: "Phone number (required)", Placeholder: "Enter your phone number", BodyLabel: "Phone",
					Errors: map[string]string{
						"missing": "Please enter your phone number",
						"format":  "Please enter a valid phone number.",
					},
				},
				"company": {
					Label: "Company name (required)", Placeholder: "Enter your company name", BodyLabel: "Company",
					Errors: map[string]string{"missing": "Please enter the name of your company"},
				},
				"email": {
					Label: "Email (required)", Placeholder: "Enter your email", BodyLabel: "Email",
					Errors: map[string]string{
						"missing": "Please enter an email address",
						"format":  "Please enter a valid email address.",
					},
				},
				"message": {Label: "Message", Placeholder: "Enter your message", BodyLabel: "Message"},
			},
			SubmitLabel: "Submit now",
			Submitting:  "Sending...",
			Success:     "Thank you for your message! Your email client has opened with the prefilled information.",
			Failure:     "Error submitting form. Please try again.",
			Subject:     "New contact: {name} from {company}",
			BodyHeader:  []string{"Contact information:", ""},
			BodyFooter:  []string{"", "This message was sent from your website contact form."},
		},
		i18n.LanguageSpanish: {
			TitleBefore: "Hagamos que tus productos sean accesibles para todos",
			Description: "¿Interesado en hacer que tus productos digitales sean verdaderamente inclusivos? Agenda una demostración rápida o reunión con nuestros expertos en accesibilidad para explorar cómo podemos ayudarte a cumplir con los requisitos, mejorar la usabilidad y apoyar a cada usuario. Descubre cómo colaboramos con empresas como la tuya para crear experiencias accesibles y de alto impacto.",
			Fields: map[string]FieldText{
				"name": {
					Label: "Nombre (requerido)", Placeholder: "Ingresa tu nombre", BodyLabel: "Nombre completo",
					Errors: map[string]string{"missing": "Por favor, ingrese un nombre"},
				},
				"phone": {
					Label: "Teléfono (requerido)", Placeholder: "Ingresa tu número de teléfono", BodyLabel: "Teléfono",
					Errors: map[string]string{
						"missing": "Por favor, ingrese su número de teléfono",
						"format":  "Por favor ingresa un teléfono válido.",
					},
				},
				"company": {
					Label: "Empresa (requerido)", Placeholder: "Ingresa el nombre de tu empresa", BodyLabel: "Empresa",
					Errors: map[string]string{"missing": "Por favor, ingrese el nombre de su empresa"},
				},
				"email": {
					Label: "Correo electrónico (requerido)", Placeholder: "Ingresa tu correo electrónico", BodyLabel: "Correo electrónico",
					Errors: map[string]string{
						"missing": "Por favor, ingrese una dirección de correo electrónico",
						"format":  "Por favor ingresa un correo válido.",
					},
				},
				"message": {Label: "Mensaje", Placeholder: "Ingresa tu mensaje", BodyLabel: "Mensaje"},
			},
			SubmitLabel: "Enviar ahora",
			Submitting:  "Enviando...",
			Success:     "¡Gracias por tu mensaje! Se ha abierto tu cliente de correo con los datos prellenados.",
			Failure:     "Error al enviar el formulario. Por favor intenta nuevamente.",
			Subject:     "Nuevo contacto: {name} de {company}",
			BodyHeader:  []string{"Información del contacto:", ""},
			BodyFooter:  []string{"", "Este mensaje fue enviado desde el formulario de contacto de tu sitio web."},
		},
	},
	NewsletterID: {
		i18n.LanguageEnglish: {
			TitleBefore: "Want to subscribe to stay ahead with the latest in accessibility?",
			Description: "Join our newsletter for exclusive updates, industry insights, and accessibility best practices.",
			Fields: map[string]FieldText{
				"name": {
					Label: "Name (required)", Placeholder: "Your name", BodyLabel: "Name",
					Errors: map[string]string{"missing": "Please enter a name"},
				},
				"email": {
					Label: "Email address (required)", Placeholder: "Email address", BodyLabel: "Email",
					Errors: map[string]string{
						"missing": "Please enter an email address",
						"format":  "Please enter a valid email address",
					},
				},
			},
			SubmitLabel: "Subscribe Now",
			Submitting:  "Sending...",
			Success:     "Thank you for subscribing! We've opened your email client to confirm.",
			Failure:     "Error submitting form. Please try again.",
			Subject:     "New Newsletter Subscription Request",
			BodyHeader: []string{
				"Newsletter Subscription Form Submission", "",
				"Form Purpose: Subscribe user to accessibility newsletter", "",
			},
			BodyFooter: []string{
				"", "Action Required: Please add this email to your newsletter distribution list.",
				"", "This submission was sent from the website footer newsletter form.",
			},
		},
		i18n.LanguageSpanish: {
			TitleBefore: "¿Quieres suscribirte para estar al día con lo último en accesibilidad?",
			Description: "Únete a nuestro boletín para recibir actualizaciones exclusivas, información de la industria y mejores prácticas de accesibilidad.",
			Fields: map[string]FieldText{
				"name": {
					Label: "Nombre (requerido)", Placeholder: "Tu nombre", BodyLabel: "Nombre",
					Errors: map[string]string{"missing": "Por favor, ingrese un nombre"},
				},
				"email": {
					Label: "Correo electrónico (requerido)", Placeholder: "Correo electrónico", BodyLabel: "Email",
					Errors: map[string]string{
						"missing": "Por favor, ingrese una dirección de correo electrónico",
						"format":  "Por favor ingresa un correo electrónico válido",
					},
				},
			},
			SubmitLabel: "Suscríbete",
			Submitting:  "Enviando...",
			Success:     "¡Gracias por suscribirte! Hemos abierto tu cliente de correo para confirmar.",
			Failure:     "Error al enviar el formulario. Por favor intenta nuevamente.",
			Subject:     "Solicitud de Suscripción al Boletín",
			BodyHeader: []string{
				"Envío de Formulario de Suscripción", "",
				"Objetivo del Formulario: Suscribir usuario al boletín de accesibilidad", "",
			},
			BodyFooter: []string{
				"", "Acción Requerida: Por favor añade este correo a tu lista de distribución.",
				"", "Este envío fue realizado desde el formulario del footer del sitio web.",
			},
		},
	},
}
