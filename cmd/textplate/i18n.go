// Package main provides localization for the textplate CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Arabic translations for CLI messages.
	l10n.Register("ar", l10n.LexiconMap{
		// Flag categories
		"Input":   "الإدخال",
		"Output":  "الإخراج",
		"Text":    "النص",
		"Debug":   "التصحيح",
		"Logging": "السجلات",

		// Root command
		"Place Arabic text on social media templates": "وضع نص عربي على قوالب وسائل التواصل الاجتماعي",

		"textplate fits text into a template area at the largest font size, wraps it into centered lines and composes it onto the background image.": "يلائم textplate النص داخل منطقة القالب بأكبر حجم خط، ويقسمه إلى أسطر متوسطة، ثم يركبه على صورة الخلفية.",

		// Render command
		"Render text onto a template image":   "رسم النص على صورة قالب",
		"TEXT (use - to read standard input)": "النص (استخدم - للقراءة من الإدخال القياسي)",

		// Probe command
		"Report whether the font supports advanced Arabic shaping": "الإبلاغ عما إذا كان الخط يدعم التشكيل العربي المتقدم",
		"%s: %s shaping":                                           "%s: تشكيل %s",

		// Input flags
		"YAML configuration file":                          "ملف إعدادات YAML",
		"TrueType or OpenType font file":                   "ملف خط TrueType أو OpenType",
		"Layout preset (post, story)":                      "قالب التخطيط (post, story)",
		"Background image (overrides the preset template)": "صورة الخلفية (تتجاوز قالب الإعداد المسبق)",
		"Directory holding the preset templates":           "المجلد الذي يحتوي على القوالب",

		// Output flags
		"Output PNG file path (default: random name in the output directory)": "مسار ملف PNG الناتج (الافتراضي: اسم عشوائي في مجلد الإخراج)",

		"Output directory for generated names":  "مجلد الإخراج للأسماء المولدة",
		"Write a Markdown summary to this path": "كتابة ملخص بتنسيق Markdown إلى هذا المسار",

		// Text flags
		"Shaping mode (auto, advanced, basic)": "وضع التشكيل (auto, advanced, basic)",
		"Smallest font size in pixels":         "أصغر حجم خط بالبكسل",
		"Largest font size in pixels":          "أكبر حجم خط بالبكسل",
		"Text color (hex, e.g., #ffffff)":      "لون النص (ست عشري، مثال: #ffffff)",

		"Fail when no font size fits instead of using the minimum size": "الفشل عندما لا يناسب أي حجم خط بدلًا من استخدام الحد الأدنى",

		// Debug flags
		"Enable debug output":        "تفعيل مخرجات التصحيح",
		"Directory for debug output": "مجلد مخرجات التصحيح",

		// Logging flags
		"Log level (debug, info, warn, error)": "مستوى السجل (debug, info, warn, error)",
		"Suppress all log output":              "إخفاء جميع مخرجات السجل",

		// Errors
		"Error: %s": "خطأ: %s",
	})
}
