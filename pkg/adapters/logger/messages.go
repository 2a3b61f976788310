package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ar", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Starting pipeline":                             "بدء المعالجة",
		"Fitting text into %dx%d on a %dx%d background": "ملاءمة النص داخل %dx%d على خلفية %dx%d",
		"Chose font size %d with %d lines":              "تم اختيار حجم الخط %d مع %d أسطر",
		"Output saved to %s":                            "تم حفظ الناتج في %s",
		"Pipeline completed successfully":               "اكتملت المعالجة بنجاح",
		"Rendering %s (%s format)...":                   "جارٍ العرض على %s (تنسيق %s)...",
		"Summary saved to %s":                           "تم حفظ الملخص في %s",

		// Shaping
		"Advanced shaping available: %t":        "التشكيل المتقدم متاح: %t",
		"Arabic letters will be drawn unjoined": "ستُرسم الحروف العربية منفصلة",
		"Using %s shaping with %s":              "استخدام تشكيل %s مع %s",

		// Normalize stage
		"Normalized %d runes to %d runes": "تم تطبيع %d محرفًا إلى %d محرفًا",

		// Fit stage
		"Fitting text into %dx%d":                             "ملاءمة النص داخل %dx%d",
		"Size %d fits: %dx%d, %d lines":                       "الحجم %d مناسب: %dx%d، %d أسطر",
		"Size %d overflows: %dx%d, %d lines":                  "الحجم %d يتجاوز: %dx%d، %d أسطر",
		"Chose size %d with %d lines":                         "تم اختيار الحجم %d مع %d أسطر",
		"No size between %d and %d fits %dx%d, using size %d": "لا يوجد حجم بين %d و %d يناسب %dx%d، استخدام الحجم %d",
		"Shaping fell back to unshaped measurement %d times":  "تم الرجوع إلى القياس دون تشكيل %d مرات",
		"Shaping failed at size %d, measuring unshaped: %v":   "فشل التشكيل عند الحجم %d، القياس دون تشكيل: %v",
		"Measurement failed at size %d, using estimate: %v":   "فشل القياس عند الحجم %d، استخدام تقدير: %v",

		// Render stage
		"Rendering %d lines at size %d":                   "رسم %d أسطر بالحجم %d",
		"Text block rendered: %dx%d":                      "تم رسم كتلة النص: %dx%d",
		"Shaped drawing failed, drawing unshaped: %v":     "فشل الرسم المشكّل، الرسم دون تشكيل: %v",
		"Drawing failed, dropping control characters: %v": "فشل الرسم، حذف محارف التحكم: %v",
		"Text block clamped from %d to %d px":             "تم قص كتلة النص من %d إلى %d بكسل",

		// Compose stage
		"Pasting %dx%d block at (%d,%d) inside %v": "لصق كتلة %dx%d عند (%d,%d) داخل %v",

		// Errors
		"Failed to read background: %s":   "فشل قراءة الخلفية: %s",
		"Failed to normalize text: %s":    "فشل تطبيع النص: %s",
		"Failed to decode background: %s": "فشل فك ترميز الخلفية: %s",
		"Failed to fit text: %s":          "فشل ملاءمة النص: %s",
		"Failed to render text: %s":       "فشل رسم النص: %s",
		"Failed to compose image: %s":     "فشل تركيب الصورة: %s",
		"Failed to encode image: %s":      "فشل ترميز الصورة: %s",
		"Failed to write output: %s":      "فشل كتابة الناتج: %s",
	})
}
