// Package i18n translates API message keys based on the Accept-Language
// header. Translation is a pure lookup with {placeholder} substitution;
// unknown keys fall back to English and then to the key itself.
package i18n

import "strings"

// Language is a supported translation locale.
type Language string

const (
	English Language = "en"
	Arabic  Language = "ar"
	French  Language = "fr"
	Spanish Language = "es"
	German  Language = "de"
)

// Default is the fallback language.
const Default = English

var translations = map[Language]map[string]string{
	English: {
		"OperationSuccessful":   "The operation was successful.",
		"RecordCreated":         "The {record} was successfully created.",
		"RecordUpdated":         "The {record} was successfully updated.",
		"RecordDeleted":         "The {record} was successfully deleted.",
		"ValidationError":       "Validation error occurred. Please check your input data.",
		"RecordNotFound":        "The requested {record} was not found.",
		"DuplicateRecord":       "A {record} with the provided information already exists.",
		"UnauthorizedAccess":    "You are not authorized to access this resource.",
		"UnauthenticatedAccess": "Authentication is required to access this resource.",
		"InternalError":         "An internal server error occurred. Please try again later.",
	},
	Arabic: {
		"OperationSuccessful":   "تمت العملية بنجاح.",
		"RecordCreated":         "تم إنشاء {record} بنجاح.",
		"RecordUpdated":         "تم تحديث {record} بنجاح.",
		"RecordDeleted":         "تم حذف {record} بنجاح.",
		"ValidationError":       "حدث خطأ في التحقق من الصحة. يرجى التحقق من بيانات الإدخال الخاصة بك.",
		"RecordNotFound":        "لم يتم العثور على {record} المطلوب.",
		"DuplicateRecord":       "{record} بالمعلومات المقدمة موجود بالفعل.",
		"UnauthorizedAccess":    "أنت غير مصرح لك بالوصول إلى هذا المورد.",
		"UnauthenticatedAccess": "المصادقة مطلوبة للوصول إلى هذا المورد.",
		"InternalError":         "حدث خطأ داخلي في الخادم. الرجاء المحاولة مرة أخرى لاحقاً.",
	},
	French: {
		"OperationSuccessful":   "L'opération a réussi.",
		"RecordCreated":         "Le {record} a été créé avec succès.",
		"RecordUpdated":         "Le {record} a été mis à jour avec succès.",
		"RecordDeleted":         "Le {record} a été supprimé avec succès.",
		"ValidationError":       "Une erreur de validation s'est produite. Veuillez vérifier vos données d'entrée.",
		"RecordNotFound":        "Le {record} demandé n'a pas été trouvé.",
		"DuplicateRecord":       "Un {record} avec les informations fournies existe déjà.",
		"UnauthorizedAccess":    "Vous n'êtes pas autorisé à accéder à cette ressource.",
		"UnauthenticatedAccess": "L'authentification est requise pour accéder à cette ressource.",
		"InternalError":         "Une erreur interne du serveur s'est produite. Veuillez réessayer plus tard.",
	},
	Spanish: {
		"OperationSuccessful":   "La operación fue exitosa.",
		"RecordCreated":         "El {record} se creó correctamente.",
		"RecordUpdated":         "El {record} se actualizó correctamente.",
		"RecordDeleted":         "El {record} se eliminó correctamente.",
		"ValidationError":       "Se produjo un error de validación. Por favor, compruebe sus datos de entrada.",
		"RecordNotFound":        "No se encontró el {record} solicitado.",
		"DuplicateRecord":       "Ya existe un {record} con la información proporcionada.",
		"UnauthorizedAccess":    "No está autorizado para acceder a este recurso.",
		"UnauthenticatedAccess": "Se requiere autenticación para acceder a este recurso.",
		"InternalError":         "Se produjo un error interno del servidor. Por favor, inténtelo de nuevo más tarde.",
	},
	German: {
		"OperationSuccessful":   "Der Vorgang war erfolgreich.",
		"RecordCreated":         "Der {record} wurde erfolgreich erstellt.",
		"RecordUpdated":         "Der {record} wurde erfolgreich aktualisiert.",
		"RecordDeleted":         "Der {record} wurde erfolgreich gelöscht.",
		"ValidationError":       "Es ist ein Validierungsfehler aufgetreten. Bitte überprüfen Sie Ihre Eingabedaten.",
		"RecordNotFound":        "Der angeforderte {record} wurde nicht gefunden.",
		"DuplicateRecord":       "Ein {record} mit den angegebenen Informationen existiert bereits.",
		"UnauthorizedAccess":    "Sie sind nicht berechtigt, auf diese Ressource zuzugreifen.",
		"UnauthenticatedAccess": "Für den Zugriff auf diese Ressource ist eine Authentifizierung erforderlich.",
		"InternalError":         "Ein interner Serverfehler ist aufgetreten. Bitte versuchen Sie es später noch einmal.",
	},
}

// ParseAcceptLanguage picks the first supported language from an
// Accept-Language header value. "en-US" matches "en".
func ParseAcceptLanguage(header string) Language {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		if _, ok := translations[Language(tag)]; ok {
			return Language(tag)
		}
		base := strings.SplitN(tag, "-", 2)[0]
		if _, ok := translations[Language(base)]; ok {
			return Language(base)
		}
	}
	return Default
}

// Translate resolves key in the given language and substitutes
// {placeholder} occurrences. Missing keys fall back to English, then to
// the key itself.
func Translate(key string, lang Language, placeholders map[string]string) string {
	table, ok := translations[lang]
	if !ok {
		table = translations[Default]
	}

	template, ok := table[key]
	if !ok {
		template, ok = translations[Default][key]
		if !ok {
			template = key
		}
	}

	for name, value := range placeholders {
		template = strings.ReplaceAll(template, "{"+name+"}", value)
	}
	return template
}
