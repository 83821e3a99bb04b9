package email

import "strconv"

type Content struct {
	Subject string
	Text    string
	HTML    string
}

func PasswordReset(link string, hours int) Content {
	h := strconv.Itoa(hours)
	return Content{
		Subject: "Password Reset Request",
		Text: "You are receiving this because you (or someone else) have requested a password reset for your account. " +
			"Please click on the following link, or paste it into your browser to complete the process:\n\n" + link +
			"\n\nThe link expires in " + h + " hour(s). If you did not request this, you can ignore this email.",
		HTML: "<p>You are receiving this because you (or someone else) have requested a password reset for your account.</p>" +
			"<p><a href=\"" + link + "\">Reset password</a></p>" +
			"<p>The link expires in " + h + " hour(s).</p>" +
			"<p>If you did not request this, you can ignore this email.</p>",
	}
}
