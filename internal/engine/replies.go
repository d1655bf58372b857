package engine

import (
	"fmt"
	"time"

	"github.com/valdezlabs/citabot/internal/locale"
)

// User-facing copy. One constant per prompt so transports never embed copy of
// their own.
const (
	replyIdleGreeting = "Hola 👋 ¿En qué puedo ayudarte?\n\n" +
		"Escribe 'cita' para agendar una cita."

	replyRequestDocument = "¡Hola! 👋 Para agendar tu cita, necesito verificar tu identidad.\n\n" +
		"📷 Por favor, envíame una foto de tu INE (credencial de elector)."

	replyCheckingDocument = "🔍 Verificando tu INE..."

	replyDocumentRejected = "❌ La imagen no parece ser un INE válido.\n\n" +
		"Por favor, envía una foto clara del frente de tu INE."

	replyProcessingSchedule = "🔍 Procesando..."

	replyScheduleRetry = "❌ No pude entender lo que me dices. Por favor intenta de nuevo.\n\n" +
		"Ejemplos:\n" +
		"• 'Mañana a las 3 PM'\n" +
		"• 'En 15 días a las 10 de la mañana'\n" +
		"• 'El próximo sábado a las 7 de la noche'"

	replyNeedBoth = "❌ Necesito que me digas la fecha y la hora para tu cita.\n\n" +
		"Por ejemplo:\n" +
		"• 'El 25 de febrero a las 3 PM'\n" +
		"• 'En 15 días a las 11 de la mañana'"

	replyFollowInstructions = "No entiendo tu mensaje. Por favor, sigue las instrucciones o inicia de nuevo con /start."

	replyScheduleMalformed = "❌ Formato de fecha/hora inválido. Por favor intenta de nuevo."

	replySchedulePast = "❌ La fecha y hora no pueden ser en el pasado. Por favor elige una fecha futura."

	replyScheduleTooFar = "❌ Solo puedo agendar citas hasta 30 días en el futuro. Por favor elige una fecha más cercana."

	replyScheduleOutsideHours = "❌ Nuestro horario de atención es de 10:00 AM a 8:00 PM. Por favor elige una hora dentro de este horario."

	replyBookingFailed = "❌ Hubo un error al agendar. Intenta de nuevo."
)

func replyDocumentVerified(holderName string) string {
	return fmt.Sprintf(
		"✅ ¡INE verificado correctamente!\n"+
			"👤 Nombre: %s\n\n"+
			"📅 ¿Para qué fecha y hora quieres tu cita?\n\n"+
			"Puedes escribirlo de forma natural:\n"+
			"• 'Mañana a las 3 PM'\n"+
			"• 'En 15 días a las 10 de la mañana'\n"+
			"• 'El próximo sábado a las 7 de la noche'",
		holderName,
	)
}

func replyGotDate(date time.Time) string {
	return fmt.Sprintf(
		"📅 Entendí la fecha: %s\n\n"+
			"⏰ ¿A qué hora te gustaría tu cita?\n\n"+
			"Nuestro horario es de 10:00 AM a 8:00 PM.",
		locale.FormatDate(date),
	)
}

func replyGotTime(clock string) string {
	return fmt.Sprintf(
		"⏰ Entendí la hora: %s\n\n"+
			"📅 ¿Para qué fecha?\n\n"+
			"Puedes decir:\n"+
			"• 'Mañana'\n"+
			"• 'En 15 días'\n"+
			"• 'El próximo lunes'",
		clock,
	)
}

func replyBookingConfirmed(holderName string, start time.Time) string {
	return fmt.Sprintf(
		"🎉 ¡Cita confirmada!\n\n"+
			"📅 Fecha: %s\n"+
			"👤 Nombre: %s\n\n"+
			"✅ Se ha agendado en nuestro calendario.\n"+
			"📧 Recibirás recordatorios antes de tu cita.\n\n"+
			"¡Te esperamos! 😊",
		locale.FormatDateTime(start), holderName,
	)
}
