package fbd

const vertex = `
#version 420

in  vec3 vertPos;
in  vec2 vertTexCoord;
out vec2 fragTexCoord;

void main() {
    fragTexCoord = vertTexCoord;
    gl_Position  = vec4(vertPos, 1);
}

`
const fragment = `
#version 420

uniform vec4 palette[16];

layout (binding = 0) uniform sampler2D framebuffer;

in  vec2 fragTexCoord;
out vec4 outputColor;

void main() {
    // Pixel values are stored in the red channel. Only the low
    // four bits select a palette entry.
    uint index = uint(texture(framebuffer, fragTexCoord).r * 255 + 0.5) % 16;
    outputColor = palette[index];
}
`
