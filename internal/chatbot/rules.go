package chatbot

const (
	greetingText = "Hola 👋 Soy tu asistente Padelmania. ¿Querés ayuda para encontrar el producto ideal o conocer más sobre bienestar y pádel?"

	promoText   = "🎉 ¡Tenemos ofertas increíbles! Productos con hasta 25% de descuento y envío gratis en compras superiores a $50.000. ¡Aprovechá!"
	contactText = "📞 Podés contactarnos por:\n• WhatsApp: +54 11 1234-5678\n• Email: info@padelmania.com\n• Instagram: @padelmania\n\n¡Estamos para ayudarte!"
	searchText  = "¡Perfecto! Podés usar nuestro buscador en la parte superior o visitá nuestra tienda para ver todos los productos disponibles. ¿Buscás algo específico como pelotas, grips o accesorios?"
	defaultText = "Gracias por tu consulta. Para ayudarte mejor, podés usar los botones de acceso rápido o visitá nuestra tienda para ver todos los productos. ¿Hay algo específico que te interese?"

	noProductsText = "Por ahora no tengo productos para recomendarte. ¡Volvé a consultarme pronto!"
)

// rule answers with a fixed text when any keyword appears in the folded input.
type rule struct {
	keywords []string
	text     string
}

// Checked in order after the recommendation keywords; the first match wins.
var fixedRules = []rule{
	{[]string{"promo", "oferta", "descuento"}, promoText},
	{[]string{"contacto", "contact", "whatsapp"}, contactText},
	{[]string{"precio", "costo"}, "💰 Envío gratis en compras desde $50.000. Los precios van desde $8.000 hasta $25.000. ¿Buscás algo en particular?"},
	{[]string{"envío", "envio"}, "🚚 Ofrecemos envío gratis en compras superiores a $50.000. Para compras menores, el costo de envío se calcula en el checkout según tu ubicación. ¡Los envíos llegan en 3-5 días hábiles!"},
	{[]string{"cuotas", "pago"}, "💳 Aceptamos pago por transferencia bancaria. Coordinamos todos los detalles por WhatsApp. ¡Es rápido y seguro!"},
	{[]string{"stock", "disponible"}, "📦 Mantenemos stock actualizado en tiempo real. Si un producto figura como disponible, lo tenemos listo para enviar. ¿Hay algún producto específico que te interese?"},
	{[]string{"pelota"}, "🎾 Tenemos pelotas de diferentes tipos: PadelNature Pro para jugadores avanzados y EcoSpin Soft para principiantes. Ambas con excelente calidad. ¿Cuál es tu nivel de juego?"},
	{[]string{"grip"}, "🎯 Nuestros grips Wave Control y EcoFeel son ideales para mejorar tu agarre. El Wave Control es premium con máxima absorción, perfecto para jugadores exigentes. ¿Preferís grip o cubregrip?"},
	{[]string{"gorra", "accesorio"}, "🧢 Tenemos gorras técnicas con protección UV y muñequeras con tecnología antibacterial. Perfectas para largas sesiones de juego. ¿Buscás protección solar o absorción de humedad?"},
	{[]string{"buscar"}, searchText},
}

var recommendKeywords = []string{"recomendar", "recomend"}

// Quick reply actions offered under the greeting.
const (
	ActionSearch    = "search"
	ActionPromos    = "promos"
	ActionContact   = "contact"
	ActionRecommend = "recommend"
)

type quickReply struct {
	label   string
	prompt  string
	fixed   string
	popular bool
}

var quickReplies = map[string]quickReply{
	ActionSearch:    {label: "🔍 Buscar productos", prompt: "Quiero buscar productos", fixed: searchText},
	ActionPromos:    {label: "🏷️ Ver promociones", prompt: "Quiero ver las promociones", fixed: promoText},
	ActionContact:   {label: "📞 Contacto", prompt: "Necesito contacto", fixed: contactText},
	ActionRecommend: {label: "💡 Recomendar", prompt: "Recomendar productos", popular: true},
}

var quickReplyOrder = []string{ActionSearch, ActionPromos, ActionContact, ActionRecommend}
