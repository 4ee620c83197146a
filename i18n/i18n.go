// Package i18n translates message and violation codes for API responses.
package i18n

import (
	"fmt"
	"strings"
)

const DefaultLanguage = "en"

var messages = map[string]map[string]string{
	"en": {
		// violations
		"required":             "Required",
		"must_be_positive":     "Must be greater than zero",
		"must_not_be_negative": "Must not be negative",
		"out_of_range":         "Out of range",
		"invalid_value":        "Invalid value",
		"mismatch":             "Does not match",
		"only_when_returned":   "Only allowed for returned deliveries",
		"already_final":        "Delivery is already closed",
		"immutable":            "Cannot be changed",
		"not_delivery_staff":   "Staff member is not on delivery duty",

		// errors
		"not_found":          "%s not found",
		"validation_error":   "Please correct the highlighted fields.",
		"invalid_credential": "Incorrect credentials.",
		"invalid_token":      "Invalid or expired token.",
		"expired_token":      "Token has expired.",
		"persistence_error":  "Changes could not be saved.",
		"unauthorized":       "Please log in.",
		"forbidden":          "You are not allowed to do that.",
		"bad_request":        "Malformed request.",
		"internal_error":     "Something went wrong.",

		// auth flows
		"incorrect_current_password": "Incorrect current password.",
		"password_updated":           "Password updated successfully.",
		"invalid_admin_id":           "Invalid admin ID.",
		"token_generated":            "Token generated. It will expire in %d minutes.",
		"password_reset":             "Password reset successfully.",
		"passwords_do_not_match":     "Passwords do not match.",
		"invalid_login":              "Invalid ID or password.",
		"logged_out":                 "Logged out.",
	},
	"hi": {
		"required":             "आवश्यक",
		"must_be_positive":     "शून्य से अधिक होना चाहिए",
		"must_not_be_negative": "ऋणात्मक नहीं हो सकता",
		"out_of_range":         "सीमा से बाहर",
		"invalid_value":        "अमान्य मान",
		"mismatch":             "मेल नहीं खाता",
		"only_when_returned":   "केवल लौटाई गई डिलीवरी के लिए",
		"already_final":        "डिलीवरी पहले ही बंद हो चुकी है",
		"immutable":            "बदला नहीं जा सकता",
		"not_delivery_staff":   "यह कर्मचारी डिलीवरी पर नहीं है",

		"not_found":          "%s नहीं मिला",
		"validation_error":   "कृपया चिह्नित फ़ील्ड ठीक करें।",
		"invalid_credential": "गलत क्रेडेंशियल।",
		"invalid_token":      "अमान्य या समाप्त टोकन।",
		"expired_token":      "टोकन की समय सीमा समाप्त हो गई है।",
		"persistence_error":  "बदलाव सहेजे नहीं जा सके।",
		"unauthorized":       "कृपया लॉग इन करें।",
		"forbidden":          "आपको इसकी अनुमति नहीं है।",
		"bad_request":        "गलत अनुरोध।",
		"internal_error":     "कुछ गलत हो गया।",

		"incorrect_current_password": "वर्तमान पासवर्ड गलत है।",
		"password_updated":           "पासवर्ड सफलतापूर्वक अपडेट किया गया।",
		"invalid_admin_id":           "अमान्य एडमिन आईडी।",
		"token_generated":            "टोकन बनाया गया। यह %d मिनट में समाप्त हो जाएगा।",
		"password_reset":             "पासवर्ड सफलतापूर्वक रीसेट किया गया।",
		"passwords_do_not_match":     "पासवर्ड मेल नहीं खाते।",
		"invalid_login":              "अमान्य आईडी या पासवर्ड।",
		"logged_out":                 "लॉग आउट हो गया।",
	},
}

// T returns the message for code in lang, falling back to English and then to the code itself.
func T(lang, code string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := messages[DefaultLanguage][code]; ok {
		return s
	}
	return code
}

// Tf is T with fmt verbs filled from args.
func Tf(lang, code string, args ...any) string {
	return fmt.Sprintf(T(lang, code), args...)
}

// TranslateAll maps every code of a field->code set to its message.
func TranslateAll(lang string, codes map[string]string) map[string]string {
	out := make(map[string]string, len(codes))
	for field, code := range codes {
		out[field] = T(lang, code)
	}
	return out
}

// DetectLanguage picks the first supported language of an Accept-Language header.
func DetectLanguage(header string) string {
	for part := range strings.SplitSeq(header, ",") {
		tag, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		base, _, _ := strings.Cut(strings.ToLower(tag), "-")
		if _, ok := messages[base]; ok {
			return base
		}
	}
	return DefaultLanguage
}
