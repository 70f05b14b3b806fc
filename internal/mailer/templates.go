package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/mmynk/healthcoach/internal/calculator"
)

// Kind identifies a transactional email.
type Kind string

const (
	// KindWelcome carries the first temporary password of a new account.
	KindWelcome Kind = "welcome"
	// KindTemporaryPassword carries a replacement temporary password.
	KindTemporaryPassword Kind = "temporary_password"
	// KindResetLink carries a single-use reset link.
	KindResetLink Kind = "reset_link"
)

// Data fills the templates. Fields a kind does not use are ignored.
type Data struct {
	Name     string
	Email    string
	Password string
	Link     string
	AppURL   string
}

type copyText struct {
	Subject string
	Heading string
	Intro   string
	Footer  string
}

var copies = map[Kind]map[calculator.Locale]copyText{
	KindWelcome: {
		calculator.LocalePT: {
			Subject: "Bem-vindo ao Health Coach!",
			Heading: "Bem-vindo ao Health Coach!",
			Intro:   "Sua conta foi criada com sucesso. Use as credenciais abaixo para acessar o sistema:",
			Footer:  "Por segurança, você deverá alterar a senha no primeiro acesso.",
		},
		calculator.LocaleEN: {
			Subject: "Welcome to Health Coach!",
			Heading: "Welcome to Health Coach!",
			Intro:   "Your account was created. Use the credentials below to sign in:",
			Footer:  "For your security you will be asked to change the password on first sign-in.",
		},
		calculator.LocaleES: {
			Subject: "¡Bienvenido a Health Coach!",
			Heading: "¡Bienvenido a Health Coach!",
			Intro:   "Tu cuenta fue creada. Usa las credenciales siguientes para acceder:",
			Footer:  "Por seguridad, deberás cambiar la contraseña en el primer acceso.",
		},
	},
	KindTemporaryPassword: {
		calculator.LocalePT: {
			Subject: "Sua nova senha temporária - Health Coach",
			Heading: "Health Coach",
			Intro:   "Sua senha foi redefinida. Use a senha temporária abaixo para acessar o sistema:",
			Footer:  "Você deverá alterar a senha no próximo acesso.",
		},
		calculator.LocaleEN: {
			Subject: "Your new temporary password - Health Coach",
			Heading: "Health Coach",
			Intro:   "Your password was reset. Use the temporary password below to sign in:",
			Footer:  "You will be asked to change it on your next sign-in.",
		},
		calculator.LocaleES: {
			Subject: "Tu nueva contraseña temporal - Health Coach",
			Heading: "Health Coach",
			Intro:   "Tu contraseña fue restablecida. Usa la contraseña temporal siguiente para acceder:",
			Footer:  "Deberás cambiarla en el próximo acceso.",
		},
	},
	KindResetLink: {
		calculator.LocalePT: {
			Subject: "Redefinição de senha - Health Coach",
			Heading: "Health Coach",
			Intro:   "Recebemos um pedido para redefinir sua senha. O link abaixo é válido por 1 hora:",
			Footer:  "Se você não fez este pedido, ignore este e-mail.",
		},
		calculator.LocaleEN: {
			Subject: "Password reset - Health Coach",
			Heading: "Health Coach",
			Intro:   "We received a request to reset your password. The link below is valid for 1 hour:",
			Footer:  "If you did not request this, ignore this email.",
		},
		calculator.LocaleES: {
			Subject: "Restablecer contraseña - Health Coach",
			Heading: "Health Coach",
			Intro:   "Recibimos una solicitud para restablecer tu contraseña. El enlace siguiente es válido por 1 hora:",
			Footer:  "Si no hiciste esta solicitud, ignora este correo.",
		},
	},
}

var bodyTemplate = template.Must(template.New("email").Parse(`<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto;">
  <h2 style="color: #2D9B6B;">{{.Copy.Heading}}</h2>
  {{if .Data.Name}}<p>{{.Data.Name}},</p>{{end}}
  <p>{{.Copy.Intro}}</p>
  {{if .Data.Password}}<div style="background: #f4f4f5; padding: 16px; border-radius: 8px; margin: 16px 0;">
    {{if .Data.Email}}<p style="margin: 4px 0;"><strong>E-mail:</strong> {{.Data.Email}}</p>{{end}}
    <p style="margin: 4px 0;"><strong>{{.PasswordLabel}}:</strong> <code>{{.Data.Password}}</code></p>
  </div>{{end}}
  {{if .Data.Link}}<p><a href="{{.Data.Link}}" style="color: #2D9B6B;">{{.Data.Link}}</a></p>{{end}}
  {{if .Data.AppURL}}<p><a href="{{.Data.AppURL}}">{{.Data.AppURL}}</a></p>{{end}}
  <p style="color: #71717a; font-size: 12px;">{{.Copy.Footer}}</p>
</div>`))

var passwordLabels = map[calculator.Locale]string{
	calculator.LocalePT: "Senha",
	calculator.LocaleEN: "Password",
	calculator.LocaleES: "Contraseña",
}

// Compose renders kind for to in locale. Unknown locales fall back to the
// default locale.
func Compose(kind Kind, locale calculator.Locale, to string, data Data) (Message, error) {
	byLocale, ok := copies[kind]
	if !ok {
		return Message{}, fmt.Errorf("unknown email kind %q", kind)
	}
	text, ok := byLocale[locale]
	if !ok {
		text = byLocale[calculator.DefaultLocale]
		locale = calculator.DefaultLocale
	}

	var buf bytes.Buffer
	err := bodyTemplate.Execute(&buf, struct {
		Copy          copyText
		Data          Data
		PasswordLabel string
	}{text, data, passwordLabels[locale]})
	if err != nil {
		return Message{}, fmt.Errorf("failed to render %s email: %w", kind, err)
	}

	return Message{To: to, Subject: text.Subject, HTML: buf.String()}, nil
}
