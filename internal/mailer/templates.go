package mailer

import "fmt"

func VerificationEmail(to, username, link string) Message {
	return Message{
		To:      to,
		Subject: "Confirm your email address",
		Body: fmt.Sprintf(
			`<p>Hi %s,</p><p>Confirm your email address by opening the link below:</p><p><a href="%s">%s</a></p>`,
			username, link, link,
		),
	}
}

func PasswordResetEmail(to, username, link string) Message {
	return Message{
		To:      to,
		Subject: "Reset your password",
		Body: fmt.Sprintf(
			`<p>Hi %s,</p><p>Use the link below to choose a new password. It expires in one hour.</p><p><a href="%s">%s</a></p><p>If you did not ask for this, ignore this email.</p>`,
			username, link, link,
		),
	}
}

func ReminderEmail(to, service, when string) Message {
	return Message{
		To:      to,
		Subject: "Reminder: upcoming booking",
		Body: fmt.Sprintf(
			`<p>Your %s booking starts at %s.</p><p>If you need to cancel, please do it as soon as possible.</p>`,
			service, when,
		),
	}
}
